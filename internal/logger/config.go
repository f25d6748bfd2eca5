package logger

import "github.com/rs/zerolog"

// LoggerConfig is the resolved form of config.LogConfig. Console output is
// always on; a file sink is added when log_file is set and is rotated by size
// and age.
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int // 0 keeps rotated files regardless of age
	Compress      bool
}

// LogFormat selects how events are rendered.
type LogFormat int

const (
	// FormatJSON writes one JSON object per event, for log shippers.
	FormatJSON LogFormat = iota
	// FormatConsole writes human-readable lines, colored on the console.
	FormatConsole
	// FormatText is FormatConsole without colors.
	FormatText
)

// DefaultLoggerConfig logs info and above to stderr in console format.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		MaxSizeMB:     100,
		MaxBackups:    3,
	}
}
