package main

import (
	"github.com/spf13/cobra"

	"github.com/minimal-api/internal/config"
	"github.com/minimal-api/internal/logging"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "minimal-api",
		Short: "Administrator and vehicle registry API",
		Long: `minimal-api serves the administrator and vehicle endpoints behind
JWT bearer authentication.

Configuration is read from an optional YAML file and environment variables
(JWT_SECRET, DB_DRIVER, DB_HOST, SERVER_PORT, SEED_ADMIN_EMAIL, ...).
Running without a subcommand is the same as "serve".`,
		Version:      "1.0.0",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml if present)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), cfgFile)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the database schema and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context(), cfgFile)
			},
		},
	)

	return root
}

// loadConfig loads and validates configuration and builds the process logger.
func loadConfig(cfgFile string) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
	logging.SetDefault(log)
	return cfg, log, nil
}
