package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: "store", Output: &buf})

	l.Info("saved", "path", "/tmp/x.json")

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "msg=saved")
	assert.Contains(t, out, "path=/tmp/x.json")
	assert.Equal(t, "store", l.Component())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Component: "app", Output: &buf}).WithComponent("tui")

	l.Warn("redraw")

	assert.Contains(t, buf.String(), "component=tui")
	assert.Equal(t, "tui", l.Component())
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: "app", Output: &buf})

	l.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
