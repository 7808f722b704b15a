package state

import (
	"encoding/json" // For JSON encoding and decoding of the receipt file
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"ccmenubar-installer/internal/logger"
)

// Receipt records what a single install run wrote to disk, so later runs
// (uninstall, test) know exactly which artifacts belong to the package.
type Receipt struct {
	Name        string    `json:"name"`         // Formula name, e.g. "ccmenubar"
	Version     string    `json:"version"`      // Installed version
	Source      string    `json:"source"`       // Archive path or source directory installed from
	SHA256      string    `json:"sha256"`       // Verified archive checksum, empty for local sources
	InstalledAt time.Time `json:"installed_at"` // Completion time of the install
	Binary      string    `json:"binary"`       // Renamed executable
	Bundle      string    `json:"bundle"`       // Compiled application bundle
	Link        string    `json:"link"`         // System link pointing at Bundle
	Example     string    `json:"example"`      // Installed hooks example
	Doc         string    `json:"doc"`          // Installed README
	Icon        bool      `json:"icon"`         // Whether the optional icon was copied
}

// Empty reports whether the receipt describes no install.
func (r *Receipt) Empty() bool {
	return r.Name == "" && r.Binary == "" && r.Bundle == ""
}

// LoadReceipt loads the receipt from a JSON file at the given path.
// If the file does not exist it returns an empty Receipt; a file that exists
// but cannot be parsed is an error.
func LoadReceipt(path string) (*Receipt, error) {
	file, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("[DEBUG] No receipt at %s\n", path)
		return &Receipt{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read receipt %s: %w", path, err)
	}

	var r Receipt
	if err := json.Unmarshal(file, &r); err != nil {
		return nil, fmt.Errorf("parse receipt %s: %w", path, err)
	}
	return &r, nil
}

// SaveReceipt writes the receipt as indented JSON, creating the parent
// directory if needed.
func SaveReceipt(path string, r *Receipt) error {
	file, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}

	// Log debug info showing the full JSON being written
	logger.Debug("[DEBUG] Writing receipt to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create receipt directory: %w", err)
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		return fmt.Errorf("write receipt %s: %w", path, err)
	}
	return nil
}

// RemoveReceipt deletes the receipt file. A missing file is not an error.
func RemoveReceipt(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove receipt %s: %w", path, err)
	}
	return nil
}
