package logger

import (
	"log/slog"
	"strings"
)

// Config carries the knobs for building the application logger.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json" or "text"
	ServiceName string
	Version     string
	Environment string
	AddSource   bool // include source file/line in records
}

// NewConfig builds a Config from explicit values.
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// LogLevel parses the configured level name. Unknown names fall back to info.
func (c Config) LogLevel() slog.Level {
	if level, ok := levelNames[strings.ToLower(c.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}

// IsJSON reports whether the JSON handler should be used.
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, "json")
}
