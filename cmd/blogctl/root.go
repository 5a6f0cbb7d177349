package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/tendant/simple-blog/pkg/simpleblog"
	"github.com/tendant/simple-blog/pkg/simpleblog/config"
)

// EnvPrefix namespaces the environment read by blogctl, e.g. BLOG_STORAGE_URL
const EnvPrefix = "BLOG_"

// RootOptions holds global flags for all commands. Empty values fall back to
// the BLOG_* environment and then to library defaults.
type RootOptions struct {
	StorageURL       string
	CollectionPrefix string
	Language         string
	Format           string // "json" | "text"
	Verbose          bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for blogctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Manage blog collections",
		Long: `blogctl reads and writes the blog, category, tag and author collections
directly through the configured storage backend.

Storage defaults to BLOG_STORAGE_URL, or memory:// when unset.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogger(opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.StorageURL, "storage", "s", "", "storage URL (memory://, file:///dir, s3://bucket, postgres://...)")
	cmd.PersistentFlags().StringVar(&opts.CollectionPrefix, "prefix", "", "collection key prefix")
	cmd.PersistentFlags().StringVar(&opts.Language, "language", "", "BCP 47 tag used to collate titles")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewBlogsCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))
	cmd.AddCommand(NewAuthorsCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewCollectionsCommand(opts))

	return cmd
}

// Config resolves the effective configuration: environment first, then flags.
func (o *RootOptions) Config() (*config.ServerConfig, error) {
	opts := []config.Option{config.WithEnv(EnvPrefix)}
	if o.StorageURL != "" {
		opts = append(opts, config.WithStorageURL(o.StorageURL))
	}
	if o.CollectionPrefix != "" {
		opts = append(opts, config.WithCollectionPrefix(o.CollectionPrefix))
	}
	if o.Language != "" {
		opts = append(opts, config.WithCatalogLanguage(o.Language))
	}
	return config.Load(opts...)
}

// Service builds the blog service over the configured storage
func (o *RootOptions) Service(ctx context.Context) (simpleblog.Service, *config.ServerConfig, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, nil, err
	}
	svc, err := cfg.BuildService(ctx, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func setupLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}
