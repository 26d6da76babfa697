package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/blockhub/internal/domain/registry"
)

type addOptions struct {
	registry  string
	dir       string
	overwrite bool
	list      bool
}

func newAddCmd(a *app) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <block> [block...]",
		Short: "Install blocks from a registry into a project",
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return runList(cmd, a, opts)
			}
			return runAdd(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.registry, "registry", "", "Registry base URL (default $BASE_URL)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "C", ".", "Project directory")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List the blocks the registry serves")

	return cmd
}

func newRegistryClient(a *app, opts *addOptions) *registry.Client {
	base := strings.TrimRight(firstNonEmpty(opts.registry, a.config.Server.BaseURL), "/")
	clientOpts := registry.DefaultClientOptions(base)
	clientOpts.Logger = a.logger
	return registry.NewClient(clientOpts)
}

func runList(cmd *cobra.Command, a *app, opts *addOptions) error {
	client := newRegistryClient(a, opts)
	index, err := client.Index(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading registry index: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, item := range index.Items {
		fmt.Fprintf(w, "%s\t%s\n", item.Name, item.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d blocks in %s\n", len(index.Items), client.BaseURL())
	return nil
}

func runAdd(cmd *cobra.Command, a *app, opts *addOptions, names []string) error {
	client := newRegistryClient(a, opts)
	base := client.BaseURL()
	installer := registry.NewInstaller(client, opts.dir, a.logger)
	installer.Overwrite = opts.overwrite

	report, err := installer.Install(cmd.Context(), names)
	if errors.Is(err, registry.ErrExists) {
		return fmt.Errorf("%w (use --overwrite to replace)", err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Installed %s\n", strings.Join(report.Items, ", "))
	for _, p := range report.Written {
		fmt.Fprintf(out, "  + %s\n", p)
	}
	for _, p := range report.Skipped {
		fmt.Fprintf(out, "  ~ %s (no content)\n", p)
	}
	if len(report.External) > 0 {
		fmt.Fprintf(out, "Not served by %s: %s\n", base, strings.Join(report.External, ", "))
	}
	if len(report.Dependencies) > 0 {
		fmt.Fprintf(out, "Install dependencies: %s\n", strings.Join(report.Dependencies, " "))
	}
	return nil
}
