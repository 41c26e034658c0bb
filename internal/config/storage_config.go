package config

import "os"

// StorageConfig defines configuration for the storage gateway
type StorageConfig struct {
	// StoragePath roots the project tree. Overridden by the STORAGE_PATH
	// environment variable at load time.
	StoragePath string `json:"storage_path,omitempty" yaml:"storage_path,omitempty" validate:"required"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	path := DefaultStoragePath
	if env := os.Getenv(StoragePathEnvVar); env != "" {
		path = env
	}
	return StorageConfig{
		StoragePath: path,
	}
}
