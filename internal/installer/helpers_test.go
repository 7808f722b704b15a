package installer

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"ccmenubar-installer/internal/config"
)

const (
	usageScript = "#!/bin/sh\necho \"Usage: ccmenubar [--start|--help] <status>\"\n"
	hooksJSON   = "{\n  \"hooks\": {\n    \"Stop\": [{\"hooks\": [{\"type\": \"command\", \"command\": \"ccmenubar Idle\"}]}]\n  }\n}\n"
	readme      = "# CCMenuBar\n\nMenu bar status for Claude Code.\n"
)

// sourceFiles returns the flat source tree of a release, keyed by file name.
func sourceFiles(withIcon bool) map[string]string {
	files := map[string]string{
		"ccmenubar_enhanced":              usageScript,
		"CCMenuBar_Enhanced.scpt":         "display dialog \"hello\"\n",
		"claude_code_hooks_dropdown.json": hooksJSON,
		"README.md":                       readme,
	}
	if withIcon {
		files["claude_logo.png"] = "\x89PNG\r\n\x1a\nfake"
	}
	return files
}

// writeSourceTree lays out an extracted release in dir.
func writeSourceTree(t *testing.T, dir string, withIcon bool) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range sourceFiles(withIcon) {
		mode := os.FileMode(0644)
		if name == "ccmenubar_enhanced" {
			mode = 0755
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), mode))
		require.NoError(t, os.Chmod(filepath.Join(dir, name), mode))
	}
}

// buildTarGz writes a GitHub-style source tarball (pax global header plus a
// single top-level directory) and returns its path and sha256.
func buildTarGz(t *testing.T, dir, top string, withIcon bool) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	writeReleaseTar(t, gz, top, withIcon)
	require.NoError(t, gz.Close())

	path := filepath.Join(dir, top+".tar.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	sum := sha256.Sum256(buf.Bytes())
	return path, hex.EncodeToString(sum[:])
}

// writeReleaseTar writes the release tar stream for sourceFiles into w,
// leaving w open for the caller to close.
func writeReleaseTar(t *testing.T, w io.Writer, top string, withIcon bool) {
	t.Helper()
	tw := tar.NewWriter(w)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Typeflag:   tar.TypeXGlobalHeader,
		Name:       "pax_global_header",
		PAXRecords: map[string]string{"comment": "0123456789abcdef"},
	}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Typeflag: tar.TypeDir, Name: top + "/", Mode: 0755}))

	files := sourceFiles(withIcon)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mode := int64(0644)
		if name == "ccmenubar_enhanced" {
			mode = 0755
		}
		content := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     top + "/" + name,
			Mode:     mode,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
}

// sandboxConfig returns the default formula with every path inside a temp dir.
func sandboxConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.HomebrewPrefix = filepath.Join(root, "brew")
	cfg.Paths.Applications = filepath.Join(root, "Applications")
	cfg.Paths.Cache = filepath.Join(root, "cache")
	cfg.Paths.SettingsFile = filepath.Join(root, "home", ".claude", "settings.json")
	require.NoError(t, cfg.Resolve())
	return cfg
}

// stubCompiler stands in for osacompile: it writes an applet executable into
// Contents/MacOS and counts calls.
type stubCompiler struct {
	calls int
	err   error
}

func (s *stubCompiler) Compile(ctx context.Context, src, out string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	if _, err := os.Stat(src); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "Contents", "MacOS", "applet"), []byte("applet"), 0755)
}

// writeScript writes an executable shell script and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	require.NoError(t, os.Chmod(path, 0755))
	return path
}

// snapshot records path, mode and content hash (or link target) for every
// entry under the given roots.
func snapshot(t *testing.T, roots ...string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			info, err := os.Lstat(path)
			if err != nil {
				return err
			}
			switch {
			case info.Mode()&os.ModeSymlink != 0:
				target, err := os.Readlink(path)
				if err != nil {
					return err
				}
				out[path] = "link:" + target
			case info.IsDir():
				out[path] = "dir:" + info.Mode().Perm().String()
			default:
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				sum := sha256.Sum256(raw)
				out[path] = info.Mode().Perm().String() + ":" + hex.EncodeToString(sum[:])
			}
			return nil
		})
		require.NoError(t, err)
	}
	return out
}
