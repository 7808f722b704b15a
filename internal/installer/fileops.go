package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// installFile copies src to dst with the given mode. The copy is written to a
// temporary file in dst's directory and renamed into place, so dst is either
// the previous file or the complete new one, never a partial copy.
func installFile(src, dst string, mode os.FileMode) (err error) {
	// Open the source file
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	// Ensure the destination directory exists
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	// Copy contents
	if _, err = io.Copy(tmp, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod failed: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	return nil
}

// forceSymlink points link at target, replacing an existing symlink or file at
// link. The new link is created next to link and renamed over it. A real
// directory at link is refused rather than deleted.
func forceSymlink(target, link string) error {
	if info, err := os.Lstat(link); err == nil && info.IsDir() {
		return fmt.Errorf("refusing to replace directory %s with a symlink", link)
	}
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	tmp := link + ".tmp-link"
	_ = os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, link); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// exists reports whether path exists (without following a final symlink).
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// removeIfExists removes path (recursively for directories). A missing path is
// not an error.
func removeIfExists(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// removeEmptyDir removes dir only if it is empty.
func removeEmptyDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
}
