package installer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoChecksum is returned when a release has no usable sha256 pinned, so
// the archive cannot pass the integrity gate.
var ErrNoChecksum = errors.New("release has no valid sha256 checksum")

// ChecksumError reports an archive whose bytes do not match the pinned hash.
type ChecksumError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// ValidSHA256 reports whether s is a 64-character hex digest.
func ValidSHA256(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// FileSHA256 returns the lowercase hex sha256 of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifySHA256 checks the file at path against the expected digest.
func VerifySHA256(path, expected string) error {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if !ValidSHA256(expected) {
		return fmt.Errorf("%w: %q", ErrNoChecksum, expected)
	}
	actual, err := FileSHA256(path)
	if err != nil {
		return err
	}
	if actual != expected {
		return &ChecksumError{Path: path, Expected: expected, Actual: actual}
	}
	return nil
}
