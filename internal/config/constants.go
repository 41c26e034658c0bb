package config

// Storage defaults
const (
	DefaultStoragePath     = "./storage"
	StoragePathEnvVar      = "STORAGE_PATH"
	ConfigPathEnvVar       = "WEBDIFF_CONFIG_PATH"
	DefaultProjectsDirName = "projects"
)

// Differ defaults
const (
	DefaultMaxDiffSequenceLength = 5000
	DefaultMaxDOMWalkDepth       = 20
	DefaultMaxBodyDiffDepth      = 5
	DefaultPositionTolerancePx   = 1.0
	DefaultColorChannelThreshold = 5
	DefaultBodyValueTruncateLen  = 100
)

// Compare engine defaults
const (
	DefaultScreenCompareConcurrency = 5
	MainSectionName                 = "main"
)

// Test runner defaults
const (
	DefaultDOMThreshold    = 95.0
	DefaultAPIThreshold    = 100.0
	DefaultVisualThreshold = 90.0
	DefaultResultsPageSize = 20
)

// Reporter defaults
const (
	DefaultReportRetentionDays = 30
	DefaultHealthSectionLimit  = 30
	DefaultHotspotPairLimit    = 10
	DefaultHotspotScreenLimit  = 10
	DefaultPDFTimeoutSeconds   = 60
)

// Server defaults
const (
	DefaultListenAddr            = ":8080"
	DefaultReadTimeoutSeconds    = 30
	DefaultWriteTimeoutSeconds   = 120
	DefaultRequestTimeoutSeconds = 90
)
