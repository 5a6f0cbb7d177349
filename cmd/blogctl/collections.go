package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// collectionKeys maps collection names to their storage keys
var collectionKeys = map[string]string{
	"blogs":      simpleblog.BlogsKey,
	"categories": simpleblog.CategoriesKey,
	"tags":       simpleblog.TagsKey,
	"authors":    simpleblog.AuthorsKey,
}

// collectionNames lists the collections in display order
var collectionNames = []string{"blogs", "categories", "tags", "authors"}

// CollectionStat describes one stored collection document
type CollectionStat struct {
	Name      string     `json:"name"`
	Key       string     `json:"key"`
	Exists    bool       `json:"exists"`
	Size      int64      `json:"size,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	ETag      string     `json:"etag,omitempty"`
}

// NewCollectionsCommand creates the collections command group
func NewCollectionsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Inspect and reset the stored collection documents",
	}

	cmd.AddCommand(newCollectionsStatCommand(opts))
	cmd.AddCommand(newCollectionsResetCommand(opts))

	return cmd
}

func newCollectionsStatCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Show size and modification time of each collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			store, err := cfg.BuildBlobStore(cmd.Context())
			if err != nil {
				return err
			}

			stats := make([]CollectionStat, 0, len(collectionNames))
			for _, name := range collectionNames {
				key := cfg.CollectionPrefix + collectionKeys[name]
				stat := CollectionStat{Name: name, Key: key}

				meta, err := store.GetObjectMeta(cmd.Context(), key)
				switch {
				case errors.Is(err, simpleblog.ErrObjectNotFound):
				case err != nil:
					return fmt.Errorf("stat %s: %w", key, err)
				default:
					stat.Exists = true
					stat.Size = meta.Size
					stat.ETag = meta.ETag
					updated := meta.UpdatedAt
					stat.UpdatedAt = &updated
				}
				stats = append(stats, stat)
			}

			return newFormatter(cmd, opts).Print(stats, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tKEY\tSIZE\tUPDATED")
				for _, s := range stats {
					if !s.Exists {
						fmt.Fprintf(tw, "%s\t%s\t-\t-\n", s.Name, s.Key)
						continue
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Name, s.Key, s.Size, s.UpdatedAt.Format(time.RFC3339))
				}
				tw.Flush()
			})
		},
	}
}

func newCollectionsResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "reset <collection>...",
		Short:     "Delete collection documents so they read as empty",
		ValidArgs: collectionNames,
		Args:      cobra.MatchAll(cobra.MinimumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset %v without --yes", args)
			}

			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			store, err := cfg.BuildBlobStore(cmd.Context())
			if err != nil {
				return err
			}

			var reset []string
			for _, name := range collectionNames {
				if !slices.Contains(args, name) {
					continue
				}
				key := cfg.CollectionPrefix + collectionKeys[name]
				if err := store.Delete(cmd.Context(), key); err != nil && !errors.Is(err, simpleblog.ErrObjectNotFound) {
					return fmt.Errorf("reset %s: %w", key, err)
				}
				reset = append(reset, name)
			}

			return newFormatter(cmd, opts).Print(map[string][]string{"reset": reset}, func(w io.Writer) {
				for _, name := range reset {
					fmt.Fprintf(w, "Reset %s\n", name)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	return cmd
}
