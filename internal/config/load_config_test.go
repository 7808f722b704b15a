package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults when no file given", func(t *testing.T) {
		cfg, err := LoadConfig("", "")
		require.NoError(t, err)
		require.Equal(t, "ccmenubar", cfg.Formula.Name)
		require.Equal(t, "ccmenubar_enhanced", cfg.Formula.Binary.Source)
		require.Equal(t, "ccmenubar", cfg.Formula.Binary.Target)
		require.Equal(t, "CCMenuBar.app", cfg.Formula.App.Name)
		require.Equal(t, []string{"--help"}, cfg.Formula.Verify.Args)
		require.Equal(t, "Usage", cfg.Formula.Verify.Expect)
		require.NoError(t, cfg.Validate())
	})

	t.Run("yaml overrides only the fields it sets", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "formula.yaml")
		content := "formula:\n  version: 1.1.0\n  sha256: abc\npaths:\n  applications: " + dir + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path, "")
		require.NoError(t, err)
		require.Equal(t, "1.1.0", cfg.Formula.Version)
		require.Equal(t, "abc", cfg.Formula.SHA256)
		require.Equal(t, dir, cfg.Paths.Applications)
		require.Equal(t, "CCMenuBar_Enhanced.scpt", cfg.Formula.App.Script)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), "")
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("formula: [unterminated"), 0644))
		_, err := LoadConfig(path, "")
		require.Error(t, err)
	})

	t.Run("env file overrides paths", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, "test.env")
		require.NoError(t, os.WriteFile(envPath, []byte("CCMENUBAR_APPLICATIONS_DIR="+dir+"/Applications\n"), 0644))
		t.Setenv("CCMENUBAR_APPLICATIONS_DIR", "")
		require.NoError(t, os.Unsetenv("CCMENUBAR_APPLICATIONS_DIR"))

		cfg, err := LoadConfig("", envPath)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "Applications"), cfg.Paths.Applications)
	})

	t.Run("missing explicit env file", func(t *testing.T) {
		_, err := LoadConfig("", filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HOMEBREW_PREFIX", "/brew")
	t.Setenv("CCMENUBAR_BIN_DIR", "/custom/bin")
	t.Setenv("CCMENUBAR_OSACOMPILE", "/fake/osacompile")
	t.Setenv("CCMENUBAR_SHA256", "deadbeef")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "/brew", cfg.Paths.HomebrewPrefix)
	assert.Equal(t, "/custom/bin", cfg.Paths.Bin)
	assert.Equal(t, "/fake/osacompile", cfg.Paths.Compiler)
	assert.Equal(t, "deadbeef", cfg.Formula.SHA256)
}

func TestResolve(t *testing.T) {
	t.Run("keg conventions", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.HomebrewPrefix = "/brew"
		cfg.Paths.Cache = "/cache"
		cfg.Paths.SettingsFile = "/home/me/.claude/settings.json"
		require.NoError(t, cfg.Resolve())

		prefix := filepath.Join("/brew", "Cellar", "ccmenubar", "1.0.0")
		assert.Equal(t, prefix, cfg.Paths.Prefix)
		assert.Equal(t, filepath.Join(prefix, "bin"), cfg.Paths.Bin)
		assert.Equal(t, filepath.Join(prefix, "share"), cfg.Paths.Share)
		assert.Equal(t, filepath.Join(prefix, "share", "doc", "ccmenubar"), cfg.Paths.Doc)

		assert.Equal(t, filepath.Join(prefix, "bin", "ccmenubar"), cfg.BinaryPath())
		assert.Equal(t, filepath.Join(prefix, "CCMenuBar.app"), cfg.BundlePath())
		assert.Equal(t, filepath.Join("/Applications", "CCMenuBar.app"), cfg.LinkPath())
		assert.Equal(t, filepath.Join(prefix, "share", "ccmenubar", "claude_code_hooks_dropdown.json"), cfg.ExamplePath())
		assert.Equal(t, filepath.Join(prefix, "share", "doc", "ccmenubar", "README.md"), cfg.DocPath())
		assert.Equal(t, filepath.Join(prefix, ReceiptName), cfg.ReceiptPath())
	})

	t.Run("explicit paths are kept", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.Prefix = "/keg"
		cfg.Paths.Bin = "/bin-here"
		require.NoError(t, cfg.Resolve())
		assert.Equal(t, "/keg", cfg.Paths.Prefix)
		assert.Equal(t, "/bin-here", cfg.Paths.Bin)
		assert.Equal(t, filepath.Join("/keg", "share"), cfg.Paths.Share)
	})

	t.Run("sha256 is normalised", func(t *testing.T) {
		cfg := Default()
		cfg.Formula.SHA256 = "  BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD\n"
		require.NoError(t, cfg.Resolve())
		assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", cfg.Formula.SHA256)
	})

	t.Run("settings file expands home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		cfg := Default()
		require.NoError(t, cfg.Resolve())
		assert.Equal(t, filepath.Join(home, ".claude", "settings.json"), cfg.Paths.SettingsFile)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Formula.Binary.Source = ""
	cfg.Formula.Readme = " "
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary.source")
	assert.Contains(t, err.Error(), "readme")

	cfg = Default()
	cfg.Paths.Applications = ""
	require.Error(t, cfg.Validate())
}
