package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/installer"
	"ccmenubar-installer/internal/logger"
)

// newInstallCmd builds `install`: fetch or locate the release, verify it,
// install every artifact, print the notice and run the smoke test.
func newInstallCmd(root *rootOptions) *cobra.Command {
	var (
		opts   installer.Options
		sha256 string
	)
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the CLI, the application bundle, the hooks example and docs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Archive != "" && opts.Source != "" {
				return errors.New("--archive and --source are mutually exclusive")
			}
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if sha256 != "" {
				cfg.Formula.SHA256 = config.NormalizeSHA256(sha256)
			}

			inst := installer.New(cfg)
			res, err := inst.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			logger.Debug("[DEBUG] Install result: %+v\n", *res)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Archive, "archive", "", "Install from a local release archive instead of downloading")
	cmd.Flags().StringVar(&opts.Source, "source", "", "Install from an already extracted source directory (skips the checksum)")
	cmd.Flags().StringVar(&sha256, "sha256", "", "Expected sha256 of the release archive")
	cmd.Flags().BoolVar(&opts.SkipVerify, "skip-verify", false, "Skip the post-install smoke test")
	return cmd
}
