package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfig_ImplicitMissing(t *testing.T) {
	cfg, err := FindConfig("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, cfg)
}

func TestFindConfig_ExplicitMissing(t *testing.T) {
	_, err := FindConfig(filepath.Join(t.TempDir(), "cfg.yaml"), "")
	require.Error(t, err)
}

func TestFindConfig_FromRoot(t *testing.T) {
	dir := t.TempDir()
	body := "rules: android-layout\nformat: txt\ntitle: Demo App\ndepth: 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0644))

	cfg, err := FindConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, "android-layout", cfg.Rules)
	assert.Equal(t, "txt", cfg.Format)
	assert.Equal(t, "Demo App", cfg.Title)
	assert.Equal(t, 3, cfg.Depth)
}

func TestLoadConfig_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("rules: [unterminated"), 0644))
	_, err := LoadConfig(p)
	require.Error(t, err)
}

func TestFileConfig_ApplyFlagsWin(t *testing.T) {
	cfg := &FileConfig{Rules: "android", Format: "txt", Title: "From file", Depth: 2}
	opts := ReportOptions{Rules: "android-res", Format: "pdf", Title: "Default"}

	cfg.Apply(&opts, func(flag string) bool { return flag == "rules" })

	assert.Equal(t, "android-res", opts.Rules, "explicit flag wins")
	assert.Equal(t, "txt", opts.Format)
	assert.Equal(t, "From file", opts.Title)
	assert.Equal(t, 2, opts.Depth)
	assert.Empty(t, opts.Font, "empty config values leave options alone")
}

func TestFileConfig_ApplyNil(t *testing.T) {
	var cfg *FileConfig
	opts := ReportOptions{Rules: "android"}
	cfg.Apply(&opts, func(string) bool { return false })
	assert.Equal(t, "android", opts.Rules)
}

func TestFindConfig_ArchiveRoot(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "project.zip")
	writeZip(t, zipPath, map[string]string{"Main.java": "class Main {}"})

	cfg, err := FindConfig("", zipPath)
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, cfg)
}
