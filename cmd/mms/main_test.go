package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalsLoadAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mms.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"warn\"\nffmpeg = \"/opt/ffmpeg\"\n"), 0o644))

	g := &Globals{Config: path, LogFormat: "json"}

	cfg, err := g.load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/opt/ffmpeg", cfg.FFmpeg)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	g = &Globals{Config: path, LogLevel: "debug", FFmpeg: "ffmpeg7"}

	cfg, err = g.load()
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg7", cfg.FFmpeg)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{})
}

func TestGlobalsLoadRejectsBadValues(t *testing.T) {
	_, err := (&Globals{LogLevel: "chatty"}).load()
	assert.Error(t, err)

	_, err = (&Globals{LogFormat: "xml"}).load()
	assert.Error(t, err)
}

func TestGlobalsContextDefaults(t *testing.T) {
	assert.NotNil(t, (&Globals{}).context())
}
