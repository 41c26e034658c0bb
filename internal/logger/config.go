package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

// LogFormat represents the output format of log entries
type LogFormat string

const (
	// FormatConsole renders human-readable colourised output
	FormatConsole LogFormat = "console"
	// FormatJSON renders structured JSON lines
	FormatJSON LogFormat = "json"
)

// LoggerConfig holds configuration for building a logger
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
}

// DefaultLoggerConfig returns the default logger configuration
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		EnableFile:    false,
		MaxSizeMB:     100,
		MaxBackups:    3,
	}
}

// ParseLogLevel converts a level string to a zerolog level, defaulting to info
func ParseLogLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
