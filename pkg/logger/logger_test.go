package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(path, "info")
	require.NoError(t, err)

	l.Debug("hidden %d", 1)
	l.Info("slots generated: %d", 12)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slots generated: 12")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestFromZap_Formats(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	l.Warn("employee %d not found", 7)
	l.Error("failed: %v", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "employee 7 not found", entries[0].Message)
	assert.Equal(t, "failed: boom", entries[1].Message)
}
