package config

// TestRunnerConfig defines configuration for the regression test runner
type TestRunnerConfig struct {
	// Default pass thresholds; overridable per run and persisted with results.
	DefaultDOMThreshold    float64 `json:"default_dom_threshold,omitempty" yaml:"default_dom_threshold,omitempty" validate:"gte=0,lte=100"`
	DefaultAPIThreshold    float64 `json:"default_api_threshold,omitempty" yaml:"default_api_threshold,omitempty" validate:"gte=0,lte=100"`
	DefaultVisualThreshold float64 `json:"default_visual_threshold,omitempty" yaml:"default_visual_threshold,omitempty" validate:"gte=0,lte=100"`
	// ResultsPageSize is the default page size for result history listing.
	ResultsPageSize int `json:"results_page_size,omitempty" yaml:"results_page_size,omitempty" validate:"gte=1"`
}

// NewDefaultTestRunnerConfig creates default test runner configuration
func NewDefaultTestRunnerConfig() TestRunnerConfig {
	return TestRunnerConfig{
		DefaultDOMThreshold:    DefaultDOMThreshold,
		DefaultAPIThreshold:    DefaultAPIThreshold,
		DefaultVisualThreshold: DefaultVisualThreshold,
		ResultsPageSize:        DefaultResultsPageSize,
	}
}
