package installer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ccmenubar-installer/internal/logger"
)

// ErrSettingsExist is returned when the settings file already exists and
// overwriting was not requested.
var ErrSettingsExist = errors.New("settings file already exists")

// InstallHooks copies the installed hooks example to settingsFile. The
// example must be valid JSON. An existing settings file is only replaced
// when force is set, and is kept as <settingsFile>.bak first.
func InstallHooks(example, settingsFile string, force bool) error {
	raw, err := os.ReadFile(example)
	if err != nil {
		return fmt.Errorf("read hooks example: %w", err)
	}
	if !json.Valid(raw) {
		return fmt.Errorf("hooks example %s is not valid JSON", example)
	}

	if _, err := os.Stat(settingsFile); err == nil {
		if !force {
			return fmt.Errorf("%w: %s (use --force to replace it)", ErrSettingsExist, settingsFile)
		}
		backup := settingsFile + ".bak"
		if err := installFile(settingsFile, backup, 0644); err != nil {
			return fmt.Errorf("back up %s: %w", settingsFile, err)
		}
		logger.Warn("[WARN] Existing settings saved to %s\n", backup)
	}

	if err := installFile(example, settingsFile, 0644); err != nil {
		return fmt.Errorf("write %s: %w", settingsFile, err)
	}
	logger.Info("[INFO] Installed hooks into %s\n", settingsFile)
	return nil
}
