package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/showcase/internal/query"
	"github.com/me/showcase/pkg/model"
)

func newListCmd() *cobra.Command {
	var (
		search     string
		categories []string
		featured   bool
		page       int
	)

	cmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "Show one page of a filtered listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := client.Collection(args[0])
			if err != nil {
				return err
			}

			codec := query.ForCollection(coll)
			f := model.FilterState{
				SearchQuery:         strings.TrimSpace(search),
				SelectedCategoryIDs: categories,
				FeaturedOnly:        featured,
			}
			q := codec.Encode(f, model.PaginationState{CurrentPage: page}, 0)
			logger.Debug("listing query", "collection", coll.Name, "query", q)

			path := "/api/v1/collections/" + url.PathEscape(coll.Name)
			if q != "" {
				path += "?" + q
			}
			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("list %s: %w", coll.Name, err)
			}

			var l model.Listing
			if err := json.Unmarshal(resp.Data, &l); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			printListing(cmd.OutOrStdout(), &l)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text search over title and excerpt")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "Category ID to include (repeatable, any match)")
	cmd.Flags().BoolVar(&featured, "featured", false, "Only featured items")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func printListing(out io.Writer, l *model.Listing) {
	if len(l.Featured) > 0 && !l.Filter.FeaturedOnly {
		fmt.Fprintln(out, "Featured:")
		for _, it := range l.Featured {
			fmt.Fprintf(out, "  * %s  %s\n", it.Slug, it.Title)
		}
		fmt.Fprintln(out)
	}

	win := l.Window
	if len(win.Items) == 0 {
		fmt.Fprintln(out, "No items found.")
	} else {
		fmt.Fprintf(out, "%-30s  %-40s  %s\n", "SLUG", "TITLE", "DATE")
		fmt.Fprintf(out, "%-30s  %-40s  %s\n", "----", "-----", "----")
		for _, it := range win.Items {
			date := "-"
			if !it.Date.IsZero() {
				date = it.Date.Format("2006-01-02")
			}
			fmt.Fprintf(out, "%-30s  %-40s  %s\n", it.Slug, it.Title, date)
		}
		fmt.Fprintf(out, "\n(%d-%d of %s)\n", win.StartIndex+1, win.StartIndex+len(win.Items),
			humanize.Plural(win.TotalItems, "item", "items"))
	}

	if win.TotalPages > 1 {
		fmt.Fprintf(out, "Pages: %s\n", pageBar(l.Links))
	}
}

// pageBar renders the page numbers with the current page in brackets.
func pageBar(m model.PageLinkModel) string {
	parts := make([]string, 0, len(m.PageNumbers)+2)
	if m.HasPrevious {
		parts = append(parts, "<")
	}
	for _, p := range m.PageNumbers {
		if !p.Ellipsis && p.Number == m.CurrentPage {
			parts = append(parts, "["+p.String()+"]")
			continue
		}
		parts = append(parts, p.String())
	}
	if m.HasNext {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}
