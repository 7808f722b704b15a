package cmd

import (
	"github.com/spf13/cobra"

	"ccmenubar-installer/internal/installer"
	"ccmenubar-installer/internal/state"
)

// newUninstallCmd builds `uninstall`: remove what the receipt says was installed.
func newUninstallCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the installed binary, bundle, link, hooks example and docs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			receipt, err := state.LoadReceipt(cfg.ReceiptPath())
			if err != nil {
				return err
			}
			return installer.Uninstall(cfg, receipt)
		},
	}
}
