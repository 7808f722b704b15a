package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/installer"
)

// newFetchCmd builds `fetch`: download the release archive into the cache
// and check it against the pinned sha256.
func newFetchCmd(root *rootOptions) *cobra.Command {
	var sha256 string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and verify the release archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if sha256 != "" {
				cfg.Formula.SHA256 = config.NormalizeSHA256(sha256)
			}

			path, err := installer.Fetch(cmd.Context(), nil, cfg.Formula, cfg.Paths.Cache)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&sha256, "sha256", "", "Expected sha256 of the release archive")
	return cmd
}
