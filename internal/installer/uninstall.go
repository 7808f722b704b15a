package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/logger"
	"ccmenubar-installer/internal/state"
)

// Uninstall removes the artifacts recorded in r, falling back to the paths in
// cfg when the receipt is empty. The system link is only removed when it is
// a symlink pointing at the bundle. Missing files are skipped; every other
// failure is collected and returned together.
func Uninstall(cfg config.Config, r *state.Receipt) error {
	if r == nil || r.Empty() {
		logger.Debug("[DEBUG] No receipt, using configured paths\n")
		r = &state.Receipt{
			Binary:  cfg.BinaryPath(),
			Bundle:  cfg.BundlePath(),
			Link:    cfg.LinkPath(),
			Example: cfg.ExamplePath(),
			Doc:     cfg.DocPath(),
		}
	}
	logger.Info("[INFO] Uninstalling %s...\n", cfg.Formula.Name)

	var errs []error
	if err := removeLink(r.Link, r.Bundle); err != nil {
		errs = append(errs, err)
	}

	for _, path := range []string{r.Bundle, r.Binary, r.Example, r.Doc} {
		if path == "" {
			continue
		}
		if !exists(path) {
			logger.Debug("[DEBUG] %s already gone\n", path)
			continue
		}
		if err := removeIfExists(path); err != nil {
			logger.Error("[ERROR] Failed to remove %s: %v\n", path, err)
			errs = append(errs, err)
			continue
		}
		logger.Info("[INFO] Removed %s\n", path)
	}

	if err := state.RemoveReceipt(cfg.ReceiptPath()); err != nil {
		logger.Error("[ERROR] %v\n", err)
		errs = append(errs, err)
	}

	// Prune empty directories inside the keg, innermost first. Directories
	// outside the prefix (a user-supplied bin dir, say) may predate the
	// install and are left alone.
	for _, dir := range []string{
		filepath.Dir(r.Example),
		filepath.Dir(r.Doc),
		cfg.Paths.Doc,
		filepath.Join(cfg.Paths.Share, "doc"),
		cfg.Paths.Share,
		cfg.Paths.Bin,
		cfg.Paths.Prefix,
	} {
		if dir != "" && dir != "." && withinDir(cfg.Paths.Prefix, dir) {
			removeEmptyDir(dir)
		}
	}

	return errors.Join(errs...)
}

// withinDir reports whether dir is root or lies beneath it.
func withinDir(root, dir string) bool {
	if root == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(dir))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}

// removeLink deletes link only when it is a symlink resolving to bundle.
func removeLink(link, bundle string) error {
	if link == "" {
		return nil
	}
	info, err := os.Lstat(link)
	if err != nil {
		logger.Debug("[DEBUG] No link at %s\n", link)
		return nil
	}
	if info.Mode()&os.ModeSymlink == 0 {
		logger.Warn("[WARN] %s is not a symlink, leaving it in place\n", link)
		return nil
	}
	target, err := os.Readlink(link)
	if err != nil {
		return fmt.Errorf("read link %s: %w", link, err)
	}
	if filepath.Clean(target) != filepath.Clean(bundle) {
		logger.Warn("[WARN] %s points at %s, not %s; leaving it in place\n", link, target, bundle)
		return nil
	}
	if err := os.Remove(link); err != nil {
		logger.Error("[ERROR] Failed to remove link %s: %v\n", link, err)
		return err
	}
	logger.Info("[INFO] Removed link %s\n", link)
	return nil
}
