package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/blockhub/internal/domain/audit"
	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
)

type checkOptions struct {
	dir    string
	strict bool
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit a registry source tree against its manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Registry source directory (default $REGISTRY_SOURCE_DIR)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as errors")

	return cmd
}

func runCheck(cmd *cobra.Command, a *app, opts *checkOptions) error {
	dir := firstNonEmpty(opts.dir, a.config.Registry.SourceDir)
	if dir == "" {
		return fmt.Errorf("--dir or REGISTRY_SOURCE_DIR is required")
	}

	cat, err := catalog.NewLoader(os.DirFS(dir), a.config.Registry.Manifest, a.logger).Load()
	if err != nil {
		return err
	}

	report, err := audit.New(dir, cat, a.logger).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errs, warns := report.Errors(), report.Warnings()
	for _, e := range errs {
		fmt.Fprintf(out, "✗ %s\n", e)
	}
	for _, w := range warns {
		fmt.Fprintf(out, "! %s\n", w)
	}
	fmt.Fprintf(out, "%d blocks, %d files scanned: %d errors, %d warnings\n",
		cat.Len(), report.Scanned, len(errs), len(warns))

	if !report.OK() {
		return fmt.Errorf("registry check failed with %d errors", len(errs))
	}
	if opts.strict && len(warns) > 0 {
		return fmt.Errorf("registry check failed with %d warnings", len(warns))
	}
	return nil
}
