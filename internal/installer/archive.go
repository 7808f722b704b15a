package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ccmenubar-installer/internal/logger"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
)

// ErrUnsupportedArchive is returned for archive names with an unknown extension.
var ErrUnsupportedArchive = errors.New("unsupported archive format")

// archiveExtensions lists the suffixes ExtractArchive understands, longest first.
var archiveExtensions = []string{".tar.gz", ".tar.bz2", ".tar.xz", ".tgz", ".tar", ".zip", ".7z"}

// archiveExt returns the archive suffix of name, or "" when unknown.
func archiveExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return ""
}

// ExtractArchive routes to the appropriate extraction function based on the
// archive type and returns the directory holding the source tree: the single
// top-level folder when the archive has one (GitHub source tarballs do), or
// dest itself otherwise.
func ExtractArchive(src, dest string) (string, error) {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("create extraction directory: %w", err)
	}

	var (
		roots topLevel
		err   error
	)
	switch archiveExt(src) {
	case ".zip":
		logger.Debug("[DEBUG] compression type is zip\n")
		err = extractZip(src, dest, &roots)
	case ".7z":
		logger.Debug("[DEBUG] compression type is .7z\n")
		err = extract7z(src, dest, &roots)
	case ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz":
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		err = extractTarArchive(src, dest, &roots)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArchive, src)
	}
	if err != nil {
		return "", err
	}
	return roots.dir(dest), nil
}

// topLevel tracks the first path component of every extracted entry.
type topLevel struct {
	names    map[string]bool
	rootFile bool
}

// add records the first path component of an entry. A plain file at the
// archive root means there is no single top-level directory.
func (t *topLevel) add(name string, isDir bool) {
	clean := strings.Trim(path.Clean(filepath.ToSlash(name)), "/")
	if clean == "" || clean == "." {
		return
	}
	if t.names == nil {
		t.names = make(map[string]bool)
	}
	first, _, nested := strings.Cut(clean, "/")
	t.names[first] = true
	if !nested && !isDir {
		t.rootFile = true
	}
}

// dir returns the single top-level directory under dest, or dest itself.
func (t *topLevel) dir(dest string) string {
	if len(t.names) == 1 && !t.rootFile {
		for name := range t.names {
			return filepath.Join(dest, filepath.FromSlash(name))
		}
	}
	return dest
}

// safeJoin joins an archive entry name onto dest, rejecting names that would
// land outside dest.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return target, nil
}

// fileMode returns perm, or 0644 when the archive recorded no permissions.
func fileMode(perm os.FileMode) os.FileMode {
	if perm == 0 {
		return 0644
	}
	return perm
}

// writeEntry copies r into target with the given permissions.
func writeEntry(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode(perm))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile applies umask; restore the recorded mode so executables stay executable.
	return os.Chmod(target, fileMode(perm))
}

// extractTarArchive handles tar and compressed tar variants
func extractTarArchive(src, dest string, roots *topLevel) error {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch archiveExt(src) {
	case ".tar.gz", ".tgz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case ".tar.bz2":
		reader = bzip2.NewReader(f)
	case ".tar.xz":
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)

	// Iterate over each file in the archive
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			target, err := safeJoin(dest, hdr.Name)
			if err != nil {
				return err
			}
			roots.add(hdr.Name, true)
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			target, err := safeJoin(dest, hdr.Name)
			if err != nil {
				return err
			}
			roots.add(hdr.Name, false)
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			target, err := safeJoin(dest, hdr.Name)
			if err != nil {
				return err
			}
			if filepath.IsAbs(hdr.Linkname) {
				return fmt.Errorf("archive symlink %q has absolute target", hdr.Name)
			}
			if _, err := safeJoin(dest, path.Join(path.Dir(filepath.ToSlash(hdr.Name)), hdr.Linkname)); err != nil {
				return err
			}
			roots.add(hdr.Name, false)
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		default:
			// pax global headers (GitHub archives carry one) and other metadata
			logger.Debug("[DEBUG] skipping tar entry %s (type %c)\n", hdr.Name, hdr.Typeflag)
		}
	}
	return nil
}

// extractZip extracts a .zip archive
func extractZip(src, dest string, roots *topLevel) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		roots.add(f.Name, f.FileInfo().IsDir())
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string, roots *topLevel) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		roots.add(f.Name, f.FileInfo().IsDir())
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
