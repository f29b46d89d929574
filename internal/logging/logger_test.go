package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Output: &buf})
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, nil, "warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")

	logger.SetLevel(LevelDebug)
	logger.Debug(ctx, "now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	derived := logger.WithComponent("navsync").With("session", "abc")
	derived.Error(context.Background(), errors.New("boom"), "tick failed", "section", "home")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))

	assert.Equal(t, "tick failed", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "navsync", record["component"])
	assert.Equal(t, "abc", record["session"])
	assert.Equal(t, "home", record["section"])
	assert.Equal(t, "boom", record["error"])
}

func TestDerivedLoggersShareLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelError, Output: &buf})
	child := logger.WithComponent("server")

	child.Info(context.Background(), "hidden")
	logger.SetLevel(LevelInfo)
	child.Info(context.Background(), "shown")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Error(context.Background(), errors.New("x"), "nothing")
		logger.With("k", "v").WithComponent("c").Warn(context.Background(), nil, "nothing")
	})
}

func TestWithComponentReplaces(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf, Component: "root"})

	logger.WithComponent("server").WithComponent("ratelimit").
		With("client_ip", "192.0.2.1", 42, "dropped", "odd").
		Info(context.Background(), "limited")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "ratelimit", record["component"])
	assert.Equal(t, "192.0.2.1", record["client_ip"])
	assert.NotContains(t, record, "odd")
	assert.Equal(t, 1, strings.Count(buf.String(), `"component"`))
}
