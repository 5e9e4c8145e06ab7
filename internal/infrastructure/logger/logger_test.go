package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
	}

	log := NewWithOutput(cfg, &buf)
	log.Info().Msg("test message")

	// Parse the JSON output
	var result map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, "info", result["level"])
	assert.Equal(t, "test message", result["message"])
	assert.Equal(t, "test-service", result["service"])
	assert.NotEmpty(t, result["time"])
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:       "info",
		Format:      "console",
		ServiceName: "test-service",
	}

	log := NewWithOutput(cfg, &buf)
	log.Info().Msg("test message")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "INF")
}

func TestNewLogger_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logged at debug level", "debug", "debug", true},
		{"debug NOT logged at info level", "info", "debug", false},
		{"warn logged at info level", "info", "warn", true},
		{"info NOT logged at warn level", "warn", "info", false},
		{"warn NOT logged at error level", "error", "warn", false},
		{"empty level means info", "", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithOutput(Config{Level: tt.configLevel, Format: "json"}, &buf)

			switch tt.logLevel {
			case "debug":
				log.Debug().Msg("test")
			case "info":
				log.Info().Msg("test")
			case "warn":
				log.Warn().Msg("test")
			}

			if tt.shouldLog {
				assert.NotEmpty(t, buf.String(), "expected log output")
			} else {
				assert.Empty(t, buf.String(), "expected no log output")
			}
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "invalid", Format: "json"}, &buf)
	log.Info().Msg("test")

	assert.NotEmpty(t, buf.String())
}

func TestNewLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:        "info",
		Format:       "json",
		ServiceName:  "test",
		EnableCaller: true,
	}

	log := NewWithOutput(cfg, &buf)
	log.Info().Msg("test")

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	caller, ok := result["caller"].(string)
	require.True(t, ok)
	assert.Contains(t, caller, "logger_test.go")
}

func TestLogger_WithSearchID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	log.WithSearchID("3f1c").WithComponent("tequila").Info().Msg("test")

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "3f1c", result["search_id"])
	assert.Equal(t, "tequila", result["component"])
}

func TestNewLogger_WritesRotatingFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "flightfinder.log")

	log := NewWithOutput(Config{Level: "info", Format: "json", File: path, FileMaxSizeMB: 1}, &buf)
	log.Info().Str("destination", "BCN").Msg("to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, buf.String(), "to file")
}

func TestNop(t *testing.T) {
	log := Nop()

	// Nop logger should not write anything and closes cleanly
	log.Info().Msg("this should not appear")
	assert.NoError(t, log.Close())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.False(t, cfg.EnableCaller)
	assert.Equal(t, "flight-finder", cfg.ServiceName)
	assert.Empty(t, cfg.File)
}

func TestNewLogger_EmptyConfigUsesDefaults(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")
	// console format with the default service name
	assert.Contains(t, output, "INF")
	assert.Contains(t, output, "flight-finder")
}

func TestNewLogger_FileWithoutSizeUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightfinder.log")

	log := NewWithOutput(Config{Format: "json", File: path}, &bytes.Buffer{})
	log.Info().Msg("to file")

	file, ok := log.closer.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, DefaultConfig().FileMaxSizeMB, file.MaxSize)
	require.NoError(t, log.Close())
}
