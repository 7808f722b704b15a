package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ReceiptName is the install receipt file written into the keg prefix.
const ReceiptName = "INSTALL_RECEIPT.json"

// Default returns the built-in CCMenuBar formula with unresolved paths.
func Default() Config {
	return Config{
		Formula: Formula{
			Name:      "ccmenubar",
			Desc:      "Claude Code status tracker for macOS menu bar",
			Homepage:  "https://github.com/hesreallyhim/ccmenubar",
			Version:   "1.0.0",
			URL:       "https://github.com/hesreallyhim/ccmenubar/archive/v1.0.0.tar.gz",
			License:   "MIT",
			DependsOn: []string{"jq"},
			Binary:    Binary{Source: "ccmenubar_enhanced", Target: "ccmenubar"},
			App: App{
				Name:   "CCMenuBar.app",
				Script: "CCMenuBar_Enhanced.scpt",
				Icon:   "claude_logo.png",
			},
			Example: "claude_code_hooks_dropdown.json",
			Readme:  "README.md",
			Verify:  Verify{Args: []string{"--help"}, Expect: "Usage"},
		},
		Paths: Paths{
			Applications: "/Applications",
			SettingsFile: "~/.claude/settings.json",
			Compiler:     "osacompile",
		},
	}
}

// LoadConfig builds the effective configuration: built-in defaults, then the
// YAML file at configFile (optional), then environment overrides. envFile is
// loaded with godotenv first; when empty, a .env in the working directory is
// used if present.
func LoadConfig(configFile, envFile string) (Config, error) {
	cfg := Default()

	if configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config %s: %w", configFile, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// ApplyEnv overrides paths (and the pinned checksum) from CCMENUBAR_* and
// HOMEBREW_PREFIX environment variables.
func (c *Config) ApplyEnv() {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&c.Paths.HomebrewPrefix, "HOMEBREW_PREFIX")
	override(&c.Paths.Prefix, "CCMENUBAR_PREFIX")
	override(&c.Paths.Bin, "CCMENUBAR_BIN_DIR")
	override(&c.Paths.Share, "CCMENUBAR_SHARE_DIR")
	override(&c.Paths.Doc, "CCMENUBAR_DOC_DIR")
	override(&c.Paths.Applications, "CCMENUBAR_APPLICATIONS_DIR")
	override(&c.Paths.Cache, "CCMENUBAR_CACHE_DIR")
	override(&c.Paths.SettingsFile, "CCMENUBAR_SETTINGS_FILE")
	override(&c.Paths.Compiler, "CCMENUBAR_OSACOMPILE")
	override(&c.Formula.SHA256, "CCMENUBAR_SHA256")
}

// Resolve fills every empty path from Homebrew keg conventions.
func (c *Config) Resolve() error {
	p := &c.Paths
	if p.HomebrewPrefix == "" {
		p.HomebrewPrefix = defaultHomebrewPrefix()
	}
	if p.Prefix == "" {
		p.Prefix = filepath.Join(p.HomebrewPrefix, "Cellar", c.Formula.Name, c.Formula.Version)
	}
	if p.Bin == "" {
		p.Bin = filepath.Join(p.Prefix, "bin")
	}
	if p.Share == "" {
		p.Share = filepath.Join(p.Prefix, "share")
	}
	if p.Doc == "" {
		p.Doc = filepath.Join(p.Share, "doc", c.Formula.Name)
	}
	if p.Cache == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		p.Cache = filepath.Join(dir, "ccmenubar-installer")
	}
	if p.Compiler == "" {
		p.Compiler = "osacompile"
	}

	c.Formula.SHA256 = NormalizeSHA256(c.Formula.SHA256)

	settings, err := expandHome(p.SettingsFile)
	if err != nil {
		return err
	}
	p.SettingsFile = settings
	return nil
}

// NormalizeSHA256 trims surrounding whitespace and lowercases a hex digest,
// so flag, env and YAML values compare equal to computed sums.
func NormalizeSHA256(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks the formula fields the install procedure relies on.
func (c *Config) Validate() error {
	f := c.Formula
	var missing []string
	for _, field := range []struct {
		name, value string
	}{
		{"name", f.Name},
		{"version", f.Version},
		{"binary.source", f.Binary.Source},
		{"binary.target", f.Binary.Target},
		{"app.name", f.App.Name},
		{"app.script", f.App.Script},
		{"example", f.Example},
		{"readme", f.Readme},
		{"verify.expect", f.Verify.Expect},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("formula is missing required fields: %s", strings.Join(missing, ", "))
	}
	if c.Paths.Applications == "" {
		return errors.New("paths.applications must not be empty")
	}
	return nil
}

// BinaryPath is where the renamed executable is installed.
func (c Config) BinaryPath() string {
	return filepath.Join(c.Paths.Bin, c.Formula.Binary.Target)
}

// BundlePath is the compiled application bundle inside the keg.
func (c Config) BundlePath() string {
	return filepath.Join(c.Paths.Prefix, c.Formula.App.Name)
}

// LinkPath is the system link pointing at the bundle.
func (c Config) LinkPath() string {
	return filepath.Join(c.Paths.Applications, c.Formula.App.Name)
}

// ExamplePath is the installed hooks example.
func (c Config) ExamplePath() string {
	return filepath.Join(c.Paths.Share, c.Formula.Name, c.Formula.Example)
}

// DocPath is the installed README.
func (c Config) DocPath() string {
	return filepath.Join(c.Paths.Doc, c.Formula.Readme)
}

// ReceiptPath is the install receipt inside the keg.
func (c Config) ReceiptPath() string {
	return filepath.Join(c.Paths.Prefix, ReceiptName)
}

// defaultHomebrewPrefix mirrors Homebrew's own choice: /opt/homebrew on Apple
// silicon, /usr/local everywhere else.
func defaultHomebrewPrefix() string {
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		return "/opt/homebrew"
	}
	return "/usr/local"
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
