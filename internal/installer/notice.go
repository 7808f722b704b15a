package installer

import (
	"fmt"
	"strings"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/logger"
)

// PostInstallNotice returns the getting-started lines shown after an install.
func PostInstallNotice(cfg config.Config) []string {
	return []string{
		"CCMenuBar installed successfully!",
		"To get started:",
		fmt.Sprintf("  1. Launch: open %s", cfg.LinkPath()),
		fmt.Sprintf("  2. Set status: %s 'Hello World'", cfg.Formula.Binary.Target),
		fmt.Sprintf("  3. Claude Code hooks example: %s", cfg.ExamplePath()),
	}
}

// PrintNotice writes the post-install notice through logger.Ohai.
func PrintNotice(cfg config.Config) {
	for _, line := range PostInstallNotice(cfg) {
		logger.Ohai("%s", line)
	}
}

// Caveats returns the usage notes printed by the caveats command.
func Caveats(cfg config.Config) string {
	bin := cfg.Formula.Binary.Target
	var b strings.Builder
	fmt.Fprintf(&b, "CCMenuBar has been installed and linked to %s.\n\n", cfg.Paths.Applications)
	b.WriteString("Quick start:\n")
	fmt.Fprintf(&b, "  %s --start           # Launch the app\n", bin)
	fmt.Fprintf(&b, "  %s \"Status text\"     # Set status\n", bin)
	fmt.Fprintf(&b, "  %s --help           # Get help\n\n", bin)
	b.WriteString("To install Claude Code hooks:\n")
	fmt.Fprintf(&b, "  cp %s %s\n\n", cfg.ExamplePath(), cfg.Paths.SettingsFile)
	b.WriteString("To add to login items:\n")
	fmt.Fprintf(&b, "  System Preferences > Users & Groups > Login Items > Add %s\n", cfg.Formula.App.Name)
	return b.String()
}
