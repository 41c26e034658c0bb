package config

// ServerConfig defines configuration for the HTTP surface
type ServerConfig struct {
	ListenAddr            string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"required"`
	ReadTimeoutSeconds    int    `json:"read_timeout_seconds,omitempty" yaml:"read_timeout_seconds,omitempty" validate:"gte=1"`
	WriteTimeoutSeconds   int    `json:"write_timeout_seconds,omitempty" yaml:"write_timeout_seconds,omitempty" validate:"gte=1"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty" yaml:"request_timeout_seconds,omitempty" validate:"gte=1"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:            DefaultListenAddr,
		ReadTimeoutSeconds:    DefaultReadTimeoutSeconds,
		WriteTimeoutSeconds:   DefaultWriteTimeoutSeconds,
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
	}
}
