package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, Settings{Format: "text", LogLevel: "warn"}, s)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SUMMARIZE_FORMAT", "JSON")
	t.Setenv("SUMMARIZE_LOG_LEVEL", "debug")
	t.Setenv("SUMMARIZE_NO_COLOR", "true")
	t.Setenv("SUMMARIZE_SIGNATURES", "sigs.yaml")

	s, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, Settings{Format: "json", Signatures: "sigs.yaml", NoColor: true, LogLevel: "debug"}, s)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	v := New()
	v.Set(KeyFormat, "xml")

	_, err := Load(v)
	assert.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestReadFile_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nlog:\n  level: info\n"), 0o644))

	v := New()
	require.NoError(t, ReadFile(v, path))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, path, v.ConfigFileUsed())
}

func TestReadFile_ExplicitMissing(t *testing.T) {
	err := ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestReadFile_DefaultMissingIsFine(t *testing.T) {
	chdir(t, t.TempDir())
	assert.NoError(t, ReadFile(New(), ""))
}

func TestReadFile_DefaultInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".summarize.yaml"), []byte("no_color: true\n"), 0o644))
	chdir(t, dir)

	v := New()
	require.NoError(t, ReadFile(v, ""))
	s, err := Load(v)
	require.NoError(t, err)
	assert.True(t, s.NoColor)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))
	t.Setenv("SUMMARIZE_FORMAT", "text")

	v := New()
	require.NoError(t, ReadFile(v, path))
	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "text", s.Format)
}
