package cmd

import (
	"github.com/spf13/cobra"

	"ccmenubar-installer/internal/installer"
)

// newHooksCmd builds `hooks`: copy the installed hooks example into the
// Claude Code settings file.
func newHooksCmd(root *rootOptions) *cobra.Command {
	var (
		force    bool
		settings string
	)
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Install the Claude Code hooks example into the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if settings == "" {
				settings = cfg.Paths.SettingsFile
			}
			return installer.InstallHooks(cfg.ExamplePath(), settings, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing settings file (a .bak copy is kept)")
	cmd.Flags().StringVar(&settings, "settings", "", "Settings file to write (default ~/.claude/settings.json)")
	return cmd
}
