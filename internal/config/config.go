package config

// GlobalConfig aggregates all subsystem configurations
type GlobalConfig struct {
	StorageConfig    StorageConfig    `json:"storage_config" yaml:"storage_config"`
	ServerConfig     ServerConfig     `json:"server_config" yaml:"server_config"`
	DifferConfig     DifferConfig     `json:"differ_config" yaml:"differ_config"`
	CompareConfig    CompareConfig    `json:"compare_config" yaml:"compare_config"`
	TestRunnerConfig TestRunnerConfig `json:"test_runner_config" yaml:"test_runner_config"`
	ReporterConfig   ReporterConfig   `json:"reporter_config" yaml:"reporter_config"`
	LogConfig        LogConfig        `json:"log_config" yaml:"log_config"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		StorageConfig:    NewDefaultStorageConfig(),
		ServerConfig:     NewDefaultServerConfig(),
		DifferConfig:     NewDefaultDifferConfig(),
		CompareConfig:    NewDefaultCompareConfig(),
		TestRunnerConfig: NewDefaultTestRunnerConfig(),
		ReporterConfig:   NewDefaultReporterConfig(),
		LogConfig:        NewDefaultLogConfig(),
	}
}
