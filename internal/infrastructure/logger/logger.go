// Package logger provides structured logging using zerolog.
// It supports JSON and console output and an optional rotating log file.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `env:"LOG_LEVEL"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"console"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// ServiceName is the name of the service for log context
	ServiceName string `env:"SERVICE_NAME" envDefault:"flight-finder"`

	// File, when set, also writes JSON logs to this path with size-based rotation
	File string `env:"LOG_FILE"`

	// FileMaxSizeMB is the size at which the log file is rotated
	FileMaxSizeMB int `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"10"`

	// FileMaxBackups is the number of rotated files kept
	FileMaxBackups int `env:"LOG_FILE_MAX_BACKUPS" envDefault:"3"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:          "info",
		Format:         "console",
		EnableCaller:   false,
		ServiceName:    "flight-finder",
		FileMaxSizeMB:  10,
		FileMaxBackups: 3,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Level == "" {
		c.Level = def.Level
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.ServiceName == "" {
		c.ServiceName = def.ServiceName
	}
	if c.FileMaxSizeMB <= 0 {
		c.FileMaxSizeMB = def.FileMaxSizeMB
	}
	return c
}

// Logger wraps zerolog.Logger with additional context.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// New creates a new Logger writing to stderr, keeping stdout for program output.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput creates a new Logger with custom output writer.
// Empty settings fall back to DefaultConfig.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	cfg = cfg.withDefaults()

	// Parse and set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	// Configure output format
	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	var closer io.Closer
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSizeMB,
			MaxBackups: cfg.FileMaxBackups,
		}
		writer = zerolog.MultiLevelWriter(writer, file)
		closer = file
	}

	// Build logger context
	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName)

	// Add caller if enabled
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{
		Logger: ctx.Logger(),
		closer: closer,
	}
}

// WithContext returns a new logger with additional context fields.
func (l *Logger) WithContext(key, value string) *Logger {
	return &Logger{
		Logger: l.With().Str(key, value).Logger(),
		closer: l.closer,
	}
}

// WithSearchID returns a logger tagged with the id of one search run.
func (l *Logger) WithSearchID(searchID string) *Logger {
	return l.WithContext("search_id", searchID)
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithContext("component", component)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Nop returns a disabled logger that produces no output.
// Useful for testing when logs are not needed.
func Nop() *Logger {
	return &Logger{
		Logger: zerolog.Nop(),
	}
}
