package config

import (
	"os"
	"path/filepath"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"gopkg.in/yaml.v3"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. -config command-line flag
// 2. WEBDIFF_CONFIG_PATH environment variable
// 3. config.yaml in the current working directory
// 4. config.yaml in the executable's directory
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		if _, err := os.Stat(configFilePathFlag); err == nil {
			return configFilePathFlag
		}
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	locations := []string{}
	if cwd, err := os.Getwd(); err == nil {
		locations = append(locations, cwd)
	}
	if exePath, err := os.Executable(); err == nil {
		locations = append(locations, filepath.Dir(exePath))
	}

	for _, loc := range locations {
		path := filepath.Join(loc, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// LoadGlobalConfig loads configuration from the given path, falling back to
// defaults when the path is empty. STORAGE_PATH always wins over the file.
func LoadGlobalConfig(configPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to read config file: "+configPath)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse config file: "+configPath)
		}
	}

	if env := os.Getenv(StoragePathEnvVar); env != "" {
		cfg.StorageConfig.StoragePath = env
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
