package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-blog/pkg/simpleblog/api"
	"github.com/tendant/simple-blog/pkg/simpleblog/catalog"
)

// NewCatalogCommand creates the catalog command group
func NewCatalogCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the blog catalog",
	}

	cmd.AddCommand(newCatalogQueryCommand(opts))

	return cmd
}

func newCatalogQueryCommand(opts *RootOptions) *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "query [query-string]",
		Short: "Filter, sort and paginate blogs",
		Long: `Run a catalog query given as a URL query string, for example

  blogctl catalog query 'q=go&categories=cat_1,cat_2&sort=title&order=asc&page=2'

The canonical form of the query is printed with the results.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = strings.TrimPrefix(args[0], "?")
			}

			svc, cfg, err := opts.Service(cmd.Context())
			if err != nil {
				return err
			}

			blogs, err := svc.ListBlogs(cmd.Context())
			if err != nil {
				return fmt.Errorf("list blogs: %w", err)
			}

			queryOpts := cfg.CatalogOptions()
			if pageSize > 0 {
				queryOpts = append(queryOpts, catalog.WithPageSize(pageSize))
			}
			resp, _, err := api.BuildCatalogResponse(blogs, raw, queryOpts...)
			if err != nil {
				return fmt.Errorf("canonicalize query: %w", err)
			}

			return newFormatter(cmd, opts).Print(resp, func(w io.Writer) {
				printCatalog(w, resp)
			})
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", catalog.DefaultPageSize, "results per page")

	return cmd
}

func printCatalog(w io.Writer, resp api.CatalogResponse) {
	fmt.Fprintf(w, "Query: ?%s\n", resp.Query)
	if resp.Total == 0 {
		fmt.Fprintln(w, "No matching blogs")
		return
	}
	fmt.Fprintf(w, "Page %d of %d (%d results)\n\n", resp.Page, resp.PageCount, resp.Total)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tCREATED\tTITLE")
	for _, item := range resp.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Slug, item.CreatedAt, item.Title)
	}
	tw.Flush()

	if len(resp.Pages) > 1 {
		pages := make([]string, 0, len(resp.Pages))
		for _, p := range resp.Pages {
			if p == resp.Page {
				pages = append(pages, fmt.Sprintf("[%d]", p))
			} else {
				pages = append(pages, fmt.Sprint(p))
			}
		}
		fmt.Fprintf(w, "\nPages: %s\n", strings.Join(pages, " "))
	}
}
