package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccmenubar-installer/internal/installer"
)

// newCaveatsCmd builds `caveats`: print the quick start, hooks and login
// item notes for the configured install locations.
func newCaveatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "caveats",
		Short: "Show usage notes for the installed package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), installer.Caveats(cfg))
			return nil
		},
	}
}
