package main

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/config"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/server"
)

type serveOptions struct {
	port string
	dir  string
	dev  bool
}

func newServeCmd(a *app) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery and the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.applyServeOptions(opts)
			srv, err := server.NewServer(cfg, a.logger)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Listen port (default $PORT)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Registry source directory (default: embedded registry)")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "Development mode")

	return cmd
}

// applyServeOptions layers the serve flags over the loaded configuration.
// --dev also swaps in the console logger.
func (a *app) applyServeOptions(opts *serveOptions) *config.Config {
	cfg := a.config
	if opts.port != "" {
		cfg.Server.Port = opts.port
	}
	if opts.dir != "" {
		cfg.Registry.SourceDir = opts.dir
	}
	if opts.dev && !cfg.Logging.Development {
		cfg.Logging.Development = true
		a.logger = logging.FromSettings(cfg.Logging.Level, true)
	}
	return cfg
}
