package config

// ReporterConfig defines configuration for the report generator
type ReporterConfig struct {
	// RetentionDays controls garbage collection of old report records.
	RetentionDays int `json:"retention_days,omitempty" yaml:"retention_days,omitempty" validate:"gte=1"`
	// HealthSectionLimit caps how many recent sections feed the health trend.
	HealthSectionLimit int `json:"health_section_limit,omitempty" yaml:"health_section_limit,omitempty" validate:"gte=1"`
	// HotspotPairLimit caps how many adjacent section pairs feed hotspot analysis.
	HotspotPairLimit int `json:"hotspot_pair_limit,omitempty" yaml:"hotspot_pair_limit,omitempty" validate:"gte=1"`
	// HotspotScreenLimit caps how many screens appear in the hotspot list.
	HotspotScreenLimit int `json:"hotspot_screen_limit,omitempty" yaml:"hotspot_screen_limit,omitempty" validate:"gte=1"`
	// ChromePath optionally points at a Chromium binary for PDF rendering.
	ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	// PDFTimeoutSeconds bounds a single PDF render.
	PDFTimeoutSeconds int `json:"pdf_timeout_seconds,omitempty" yaml:"pdf_timeout_seconds,omitempty" validate:"gte=1"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		RetentionDays:      DefaultReportRetentionDays,
		HealthSectionLimit: DefaultHealthSectionLimit,
		HotspotPairLimit:   DefaultHotspotPairLimit,
		HotspotScreenLimit: DefaultHotspotScreenLimit,
		PDFTimeoutSeconds:  DefaultPDFTimeoutSeconds,
	}
}
