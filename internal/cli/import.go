package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/showcase/internal/content"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Upload categories and items from a YAML or JSON fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := content.Load(args[0])
			if err != nil {
				return err
			}

			for _, c := range b.Categories {
				_, err := client.Put("/api/v1/categories/"+url.PathEscape(c.ID), map[string]any{
					"taxonomy":    c.Taxonomy,
					"name":        c.Name,
					"slug":        c.Slug,
					"description": c.Description,
				})
				if err != nil {
					return fmt.Errorf("put category %s: %w", c.ID, err)
				}
			}

			for _, it := range b.Items {
				body := map[string]any{
					"id":           it.ID,
					"title":        it.Title,
					"excerpt_html": it.ExcerptHTML,
					"category_ids": it.CategoryIDs,
					"featured":     it.Featured,
				}
				if !it.Date.IsZero() {
					body["date"] = it.Date.Format(time.RFC3339Nano)
				}
				if _, err := client.Put(itemPath(it.Collection, it.Slug), body); err != nil {
					return fmt.Errorf("put item %s/%s: %w", it.Collection, it.Slug, err)
				}
				logger.Debug("imported item", "collection", it.Collection, "slug", it.Slug)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories and %d items\n", len(b.Categories), len(b.Items))
			return nil
		},
	}
}
