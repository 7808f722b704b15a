package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/logger"
)

var (
	// ErrBinaryMissing is returned when the archive has no executable to install.
	ErrBinaryMissing = errors.New("binary not found in source tree")
	// ErrNotExecutable is returned when the archive's binary has no exec bit.
	ErrNotExecutable = errors.New("binary is not executable")
)

// Installer places one formula's artifacts at the paths in Config.
type Installer struct {
	Config   config.Config
	Compiler ScriptCompiler
}

// Result lists every artifact an install wrote.
type Result struct {
	Binary  string
	Bundle  string
	Link    string
	Example string
	Doc     string
	Icon    bool // whether the optional icon was present and copied
}

// New returns an Installer that compiles scripts with the configured
// compiler tool.
func New(cfg config.Config) *Installer {
	return &Installer{
		Config:   cfg,
		Compiler: OSACompiler{Tool: cfg.Paths.Compiler},
	}
}

// Install runs the install steps in order against the extracted source tree
// at srcDir. The first failing step aborts the run; earlier artifacts stay
// on disk and a later run overwrites them.
func (i *Installer) Install(ctx context.Context, srcDir string) (*Result, error) {
	cfg := i.Config
	f := cfg.Formula
	res := &Result{
		Binary:  cfg.BinaryPath(),
		Bundle:  cfg.BundlePath(),
		Link:    cfg.LinkPath(),
		Example: cfg.ExamplePath(),
		Doc:     cfg.DocPath(),
	}

	logger.Info("[INFO] Installing %s@%s from %s\n", f.Name, f.Version, srcDir)

	// 1. Binary, renamed to the command name
	binSrc := filepath.Join(srcDir, f.Binary.Source)
	if err := checkExecutable(binSrc); err != nil {
		return nil, err
	}
	if err := installFile(binSrc, res.Binary, 0755); err != nil {
		return nil, fmt.Errorf("install binary %s: %w", res.Binary, err)
	}
	logger.Debug("[DEBUG] Installed %s -> %s\n", binSrc, res.Binary)

	// 2. Bundle scaffolding, recreated from scratch
	if err := removeIfExists(res.Bundle); err != nil {
		return nil, fmt.Errorf("remove previous bundle %s: %w", res.Bundle, err)
	}
	macOSDir := filepath.Join(res.Bundle, "Contents", "MacOS")
	resourcesDir := filepath.Join(res.Bundle, "Contents", "Resources")
	for _, dir := range []string{macOSDir, resourcesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create bundle directory %s: %w", dir, err)
		}
	}

	// 3. Script compilation into the bundle root
	script := filepath.Join(srcDir, f.App.Script)
	if _, err := os.Stat(script); err != nil {
		return nil, fmt.Errorf("script source: %w", err)
	}
	logger.Info("[INFO] Compiling %s into %s\n", f.App.Script, res.Bundle)
	if err := i.Compiler.Compile(ctx, script, res.Bundle); err != nil {
		return nil, err
	}

	// 4. Optional icon
	if f.App.Icon != "" {
		icon := filepath.Join(srcDir, f.App.Icon)
		if _, err := os.Stat(icon); err == nil {
			if err := installFile(icon, filepath.Join(resourcesDir, f.App.Icon), 0644); err != nil {
				return nil, fmt.Errorf("install icon: %w", err)
			}
			res.Icon = true
		} else {
			logger.Debug("[DEBUG] No icon %s in source, skipping\n", icon)
		}
	}

	// 5. System link
	if err := forceSymlink(res.Bundle, res.Link); err != nil {
		return nil, fmt.Errorf("link %s: %w", res.Link, err)
	}
	logger.Debug("[DEBUG] Linked %s -> %s\n", res.Link, res.Bundle)

	// 6. Hooks example and documentation, verbatim
	if err := installFile(filepath.Join(srcDir, f.Example), res.Example, 0644); err != nil {
		return nil, fmt.Errorf("install %s: %w", f.Example, err)
	}
	if err := installFile(filepath.Join(srcDir, f.Readme), res.Doc, 0644); err != nil {
		return nil, fmt.Errorf("install %s: %w", f.Readme, err)
	}

	logger.Info("[INFO] Installed %s@%s\n", f.Name, f.Version)
	return res, nil
}

// checkExecutable verifies path is a regular file with at least one exec bit.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrBinaryMissing, path)
	}
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrBinaryMissing, path)
	}
	if info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("%w: %s", ErrNotExecutable, path)
	}
	return nil
}

// goos is the platform Preflight checks against; swapped in tests.
var goos = runtime.GOOS

// Preflight warns about unmet platform and command requirements. The
// installer never installs dependencies itself.
func Preflight(f config.Formula) {
	if goos != "darwin" {
		logger.Warn("[WARN] %s targets macOS; running on %s\n", f.Name, goos)
	}
	for _, dep := range f.DependsOn {
		if _, err := lookPath(dep); err != nil {
			logger.Warn("[WARN] %s depends on %s, which was not found in PATH\n", f.Name, dep)
		}
	}
}
