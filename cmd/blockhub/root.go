package main

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/config"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
)

type rootFlags struct {
	verbose bool
}

// app is shared by every subcommand
type app struct {
	flags  *rootFlags
	config *config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{flags: &rootFlags{}}

	cmd := &cobra.Command{
		Use:           "blockhub",
		Short:         "Blockhub serves, publishes and installs copy-paste UI blocks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newBuildCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.flags.verbose {
		cfg.Logging.Level = "debug"
	}
	a.config = cfg
	a.logger = logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	return nil
}
