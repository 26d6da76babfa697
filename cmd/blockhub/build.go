package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/blockhub/internal/content"
	"github.com/GriffinCanCode/blockhub/internal/domain/build"
	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/domain/code"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/storage"
)

type buildOptions struct {
	dir      string
	out      string
	bucket   string
	prefix   string
	region   string
	endpoint string
	stack    string
}

func newBuildCmd(a *app) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Publish the registry as static JSON",
		Long: "Writes r/<name>.json for every block plus r/registry.json, either below\n" +
			"--out or into the S3 bucket named by --s3-bucket / $PUBLISH_S3_BUCKET.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Registry source directory (default: embedded registry)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory")
	cmd.Flags().StringVar(&opts.bucket, "s3-bucket", "", "S3 bucket (default $PUBLISH_S3_BUCKET)")
	cmd.Flags().StringVar(&opts.prefix, "s3-prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&opts.region, "s3-region", "", "Bucket region")
	cmd.Flags().StringVar(&opts.endpoint, "s3-endpoint", "", "S3-compatible endpoint")
	cmd.Flags().StringVar(&opts.stack, "stack", "", "Publish one stack variant")

	return cmd
}

func runBuild(cmd *cobra.Command, a *app, opts *buildOptions) error {
	cfg := a.config
	if opts.dir == "" {
		opts.dir = cfg.Registry.SourceDir
	}

	store, target, err := buildStore(a, opts)
	if err != nil {
		return err
	}

	fsys, err := content.Open(opts.dir)
	if err != nil {
		return fmt.Errorf("opening registry source: %w", err)
	}
	cat, err := catalog.NewLoader(fsys, cfg.Registry.Manifest, a.logger).Load()
	if err != nil {
		return err
	}

	builder := build.NewBuilder(cat, code.NewReader(fsys, a.logger, nil), store, catalog.ProjectionOptions{
		PublicTemplate: cfg.Registry.PublicPath,
		Stack:          opts.stack,
		RegistryName:   cfg.Registry.Name,
		Homepage:       cfg.Server.BaseURL,
	}, a.logger)

	report, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("publishing registry: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Published %d items (%d bytes) to %s in %s\n", report.Items, report.Bytes, target, report.Duration.Round(1e6))
	for _, f := range report.Empty {
		fmt.Fprintf(out, "  warning: published without content: %s\n", f)
	}
	return nil
}

func buildStore(a *app, opts *buildOptions) (storage.ObjectStore, string, error) {
	if opts.out != "" {
		return storage.NewLocalStore(opts.out), opts.out, nil
	}

	pub := a.config.Publish
	s3cfg := storage.S3Config{
		Bucket:   firstNonEmpty(opts.bucket, pub.Bucket),
		Region:   firstNonEmpty(opts.region, pub.Region),
		Prefix:   firstNonEmpty(opts.prefix, pub.Prefix),
		Endpoint: firstNonEmpty(opts.endpoint, pub.Endpoint),
	}
	if s3cfg.Bucket == "" {
		return nil, "", fmt.Errorf("either --out or --s3-bucket is required")
	}
	store, err := storage.NewS3Store(s3cfg)
	if err != nil {
		return nil, "", err
	}
	return store, "s3://" + s3cfg.Bucket + "/" + s3cfg.Prefix, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
