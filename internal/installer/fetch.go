package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/logger"
)

// CachedArchiveName is the file name a release archive is stored under in
// the download cache, e.g. ccmenubar-1.0.0.tar.gz.
func CachedArchiveName(f config.Formula) string {
	ext := archiveExt(path.Base(f.URL))
	if ext == "" {
		ext = ".tar.gz"
	}
	return fmt.Sprintf("%s-%s%s", f.Name, f.Version, ext)
}

// Fetch downloads the formula's release archive into cacheDir and returns its
// path once the bytes match the pinned sha256. A cached archive that already
// matches is reused; one that does not is downloaded again.
func Fetch(ctx context.Context, client *http.Client, f config.Formula, cacheDir string) (string, error) {
	f.SHA256 = config.NormalizeSHA256(f.SHA256)
	if !ValidSHA256(f.SHA256) {
		return "", fmt.Errorf("%w: %s@%s has sha256 %q", ErrNoChecksum, f.Name, f.Version, f.SHA256)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}

	dest := filepath.Join(cacheDir, CachedArchiveName(f))
	if _, err := os.Stat(dest); err == nil {
		err := VerifySHA256(dest, f.SHA256)
		if err == nil {
			logger.Info("[INFO] Using cached %s\n", dest)
			return dest, nil
		}
		var mismatch *ChecksumError
		if !errors.As(err, &mismatch) {
			return "", err
		}
		logger.Warn("[WARN] Cached archive %s does not match sha256, downloading again\n", dest)
	}

	logger.Info("[INFO] Downloading %s\n", f.URL)
	partial := dest + ".incomplete"
	if err := downloadFile(ctx, client, f.URL, partial); err != nil {
		_ = os.Remove(partial)
		return "", err
	}
	if err := VerifySHA256(partial, f.SHA256); err != nil {
		_ = os.Remove(partial)
		return "", err
	}
	if err := os.Rename(partial, dest); err != nil {
		return "", fmt.Errorf("move download into cache: %w", err)
	}

	logger.Debug("[DEBUG] Verified %s (sha256 %s)\n", dest, f.SHA256)
	return dest, nil
}

// downloadFile downloads the content located at url and saves it to destPath.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	// Handle non-200 responses
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s failed: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("failed to write response to file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	logger.Debug("[DEBUG] Downloaded %s to %s\n", url, destPath)
	return nil
}
