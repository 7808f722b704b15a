package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"ccmenubar-installer/internal/config"
	"ccmenubar-installer/internal/logger"
)

// version is set at build time with -ldflags "-X ccmenubar-installer/cmd.version=..."
var version = "dev"

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	debug           bool   // --debug: enable debug logging
	configPath      string // --config: optional formula YAML
	envFile         string // --env-file: dotenv file with CCMENUBAR_* overrides
	prefix          string // --prefix: keg prefix override
	applicationsDir string // --applications-dir: where the system link goes
}

// loadConfig resolves the effective configuration: defaults, YAML, env, then flags.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath, o.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if o.prefix != "" {
		cfg.Paths.Prefix = o.prefix
	}
	if o.applicationsDir != "" {
		cfg.Paths.Applications = o.applicationsDir
	}
	if err := cfg.Resolve(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	logger.Debug("[DEBUG] Resolved paths: %+v\n", cfg.Paths)
	return cfg, nil
}

// NewRootCmd builds the `ccmenubar-installer` command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "ccmenubar-installer",
		Short:         "Fetch, build and install the CCMenuBar menu-bar status utility",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,

		// PersistentPreRun is a hook that runs before any subcommand.
		// Here, we initialize the logger based on the debug flag.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.debug)
			logger.SetOutput(cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to formula configuration file (defaults built in)")
	flags.StringVar(&opts.envFile, "env-file", "", "Path to a .env file with CCMENUBAR_* overrides")
	flags.StringVar(&opts.prefix, "prefix", "", "Install prefix (default <homebrew_prefix>/Cellar/<name>/<version>)")
	flags.StringVar(&opts.applicationsDir, "applications-dir", "", "Directory receiving the application link (default /Applications)")

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newFetchCmd(opts))
	rootCmd.AddCommand(newTestCmd(opts))
	rootCmd.AddCommand(newCaveatsCmd(opts))
	rootCmd.AddCommand(newUninstallCmd(opts))
	rootCmd.AddCommand(newHooksCmd(opts))
	return rootCmd
}

// Execute runs the CLI and exits non-zero on any error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
