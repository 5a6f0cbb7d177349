package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// taxonomyEntry is the common shape printed for categories, tags and authors
type taxonomyEntry struct {
	ID   string
	Name string
	Bio  string
}

// NewCategoriesCommand creates the categories command group
func NewCategoriesCommand(opts *RootOptions) *cobra.Command {
	return newTaxonomyCommand(opts, "categories", "category",
		func(ctx context.Context, svc simpleblog.Service) (any, []taxonomyEntry, error) {
			items, err := svc.ListCategories(ctx)
			entries := make([]taxonomyEntry, 0, len(items))
			for _, c := range items {
				entries = append(entries, taxonomyEntry{ID: c.ID, Name: c.Name})
			}
			return items, entries, err
		},
		func(ctx context.Context, svc simpleblog.Service, name, _ string) (any, taxonomyEntry, error) {
			c, err := svc.CreateCategory(ctx, name)
			if err != nil {
				return nil, taxonomyEntry{}, err
			}
			return c, taxonomyEntry{ID: c.ID, Name: c.Name}, nil
		},
		false,
	)
}

// NewTagsCommand creates the tags command group
func NewTagsCommand(opts *RootOptions) *cobra.Command {
	return newTaxonomyCommand(opts, "tags", "tag",
		func(ctx context.Context, svc simpleblog.Service) (any, []taxonomyEntry, error) {
			items, err := svc.ListTags(ctx)
			entries := make([]taxonomyEntry, 0, len(items))
			for _, t := range items {
				entries = append(entries, taxonomyEntry{ID: t.ID, Name: t.Name})
			}
			return items, entries, err
		},
		func(ctx context.Context, svc simpleblog.Service, name, _ string) (any, taxonomyEntry, error) {
			t, err := svc.CreateTag(ctx, name)
			if err != nil {
				return nil, taxonomyEntry{}, err
			}
			return t, taxonomyEntry{ID: t.ID, Name: t.Name}, nil
		},
		false,
	)
}

// NewAuthorsCommand creates the authors command group
func NewAuthorsCommand(opts *RootOptions) *cobra.Command {
	return newTaxonomyCommand(opts, "authors", "author",
		func(ctx context.Context, svc simpleblog.Service) (any, []taxonomyEntry, error) {
			items, err := svc.ListAuthors(ctx)
			entries := make([]taxonomyEntry, 0, len(items))
			for _, a := range items {
				entries = append(entries, taxonomyEntry{ID: a.ID, Name: a.Name, Bio: a.Bio})
			}
			return items, entries, err
		},
		func(ctx context.Context, svc simpleblog.Service, name, bio string) (any, taxonomyEntry, error) {
			a, err := svc.CreateAuthor(ctx, name, bio)
			if err != nil {
				return nil, taxonomyEntry{}, err
			}
			return a, taxonomyEntry{ID: a.ID, Name: a.Name, Bio: a.Bio}, nil
		},
		true,
	)
}

type (
	listFunc   func(ctx context.Context, svc simpleblog.Service) (any, []taxonomyEntry, error)
	createFunc func(ctx context.Context, svc simpleblog.Service, name, bio string) (any, taxonomyEntry, error)
)

func newTaxonomyCommand(opts *RootOptions, use, kind string, list listFunc, create createFunc, withBio bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("List and add %s", use),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s sorted by name", use),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.Service(cmd.Context())
			if err != nil {
				return err
			}

			data, entries, err := list(cmd.Context(), svc)
			if err != nil {
				return fmt.Errorf("list %s: %w", use, err)
			}

			return newFormatter(cmd, opts).Print(data, func(w io.Writer) {
				if len(entries) == 0 {
					fmt.Fprintf(w, "No %s\n", use)
					return
				}
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\n", e.ID, e.Name)
				}
				tw.Flush()
			})
		},
	})

	var bio string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: fmt.Sprintf("Add a %s, or return the existing one with the same name", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.Service(cmd.Context())
			if err != nil {
				return err
			}

			data, entry, err := create(cmd.Context(), svc, args[0], bio)
			if err != nil {
				return err
			}

			return newFormatter(cmd, opts).Print(data, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s (%s)\n", kind, entry.Name, entry.ID)
			})
		},
	}
	if withBio {
		add.Flags().StringVar(&bio, "bio", "", "author biography")
	}
	cmd.AddCommand(add)

	return cmd
}
