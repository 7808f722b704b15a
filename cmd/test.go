package cmd

import (
	"github.com/spf13/cobra"

	"ccmenubar-installer/internal/installer"
)

// newTestCmd builds `test`: run the smoke test against the installed binary.
func newTestCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check that the installed binary runs and prints its usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			v := cfg.Formula.Verify
			return installer.Verify(cmd.Context(), cfg.BinaryPath(), v.Args, v.Expect)
		},
	}
}
