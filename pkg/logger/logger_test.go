package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meetscribe/pkg/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "production"},
		Log:    config.LogConfig{Level: "info", File: path},
	}

	l, err := New(cfg)
	require.NoError(t, err)

	l.Info("summary.generated")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "summary.generated")
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "loud"}}

	_, err := New(cfg)
	assert.Error(t, err)
}
