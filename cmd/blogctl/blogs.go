package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// NewBlogsCommand creates the blogs command group
func NewBlogsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogs",
		Short: "List, create and delete blogs",
	}

	cmd.AddCommand(newBlogsListCommand(opts))
	cmd.AddCommand(newBlogsShowCommand(opts))
	cmd.AddCommand(newBlogsCreateCommand(opts))
	cmd.AddCommand(newBlogsDeleteCommand(opts))

	return cmd
}

func newBlogsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blogs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.Service(cmd.Context())
			if err != nil {
				return err
			}

			blogs, err := svc.ListBlogs(cmd.Context())
			if err != nil {
				return fmt.Errorf("list blogs: %w", err)
			}

			return newFormatter(cmd, opts).Print(blogs, func(w io.Writer) {
				printBlogTable(w, blogs)
			})
		},
	}
}

func newBlogsShowCommand(opts *RootOptions) *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a blog by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.Service(cmd.Context())
			if err != nil {
				return err
			}

			blog, err := svc.GetBlog(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !expand {
				return newFormatter(cmd, opts).Print(blog, func(w io.Writer) {
					printBlog(w, *blog)
				})
			}

			expanded, err := svc.ExpandBlog(cmd.Context(), *blog)
			if err != nil {
				return fmt.Errorf("expand blog: %w", err)
			}
			return newFormatter(cmd, opts).Print(expanded, func(w io.Writer) {
				printBlog(w, expanded.Blog)
				if expanded.Author != nil {
					fmt.Fprintf(w, "Author:     %s\n", expanded.Author.Name)
				}
				fmt.Fprintf(w, "Categories: %s\n", joinNames(expanded.Categories, func(c simpleblog.Category) string { return c.Name }))
				fmt.Fprintf(w, "Tags:       %s\n", joinNames(expanded.Tags, func(t simpleblog.Tag) string { return t.Name }))
			})
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "resolve category, tag and author references")

	return cmd
}

func newBlogsCreateCommand(opts *RootOptions) *cobra.Command {
	req := simpleblog.CreateBlogRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blog",
		Long:  `Create a blog. The slug is derived from the title and made unique.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.Service(cmd.Context())
			if err != nil {
				return err
			}

			if req.CategoryIDs == nil {
				req.CategoryIDs = []string{}
			}
			if req.TagIDs == nil {
				req.TagIDs = []string{}
			}

			blog, err := svc.CreateBlog(cmd.Context(), req)
			if err != nil {
				return err
			}

			return newFormatter(cmd, opts).Print(blog, func(w io.Writer) {
				fmt.Fprintf(w, "Created %s (%s)\n", blog.Slug, blog.ID)
			})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "blog title")
	cmd.Flags().StringVar(&req.Content, "content", "", "blog content")
	cmd.Flags().StringVar(&req.ImageURL, "image", "", "cover image URL")
	cmd.Flags().StringVar(&req.AuthorID, "author", "", "author ID")
	cmd.Flags().StringSliceVar(&req.CategoryIDs, "category", nil, "category ID (repeatable)")
	cmd.Flags().StringSliceVar(&req.TagIDs, "tag", nil, "tag ID (repeatable)")

	return cmd
}

func newBlogsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a blog by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.Service(cmd.Context())
			if err != nil {
				return err
			}

			deleted, err := svc.DeleteBlog(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("delete blog: %w", err)
			}
			if !deleted {
				return &simpleblog.NotFoundError{Kind: "blog", Key: args[0]}
			}

			return newFormatter(cmd, opts).Print(map[string]bool{"deleted": true}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted %s\n", args[0])
			})
		},
	}
}

func printBlogTable(w io.Writer, blogs []simpleblog.Blog) {
	if len(blogs) == 0 {
		fmt.Fprintln(w, "No blogs")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tCREATED\tTITLE")
	for _, b := range blogs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Slug, b.CreatedAt, b.Title)
	}
	tw.Flush()
}

// createdLayout renders blog creation times in show output
const createdLayout = "Mon, 02 Jan 2006 15:04 MST"

func printBlog(w io.Writer, b simpleblog.Blog) {
	fmt.Fprintf(w, "ID:         %s\n", b.ID)
	fmt.Fprintf(w, "Slug:       %s\n", b.Slug)
	fmt.Fprintf(w, "Title:      %s\n", b.Title)
	if created := b.CreatedTime(); !created.IsZero() {
		fmt.Fprintf(w, "Created:    %s\n", created.Format(createdLayout))
	} else {
		fmt.Fprintf(w, "Created:    %s\n", b.CreatedAt)
	}
	if b.ImageURL != "" {
		fmt.Fprintf(w, "Image:      %s\n", b.ImageURL)
	}
	fmt.Fprintf(w, "\n%s\n\n", b.Content)
}

func joinNames[T any](items []T, name func(T) string) string {
	if len(items) == 0 {
		return "-"
	}
	out := name(items[0])
	for _, item := range items[1:] {
		out += ", " + name(item)
	}
	return out
}
