package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/showcase/internal/filter"
	"github.com/me/showcase/pkg/model"
)

func itemPath(collection, slug string) string {
	return "/api/v1/collections/" + url.PathEscape(collection) + "/items/" + url.PathEscape(slug)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <collection> <slug>",
		Short: "Show a single item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get(itemPath(args[0], args[1]))
			if err != nil {
				return fmt.Errorf("get item: %w", err)
			}

			var it model.ContentItem
			if err := json.Unmarshal(resp.Data, &it); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Item: %s\n", it.Slug)
			fmt.Fprintf(out, "  ID:         %s\n", it.ID)
			fmt.Fprintf(out, "  Title:      %s\n", it.Title)
			fmt.Fprintf(out, "  Collection: %s\n", it.Collection)
			fmt.Fprintf(out, "  Featured:   %t\n", it.Featured)
			if len(it.CategoryIDs) > 0 {
				fmt.Fprintf(out, "  Categories: %s\n", strings.Join(it.CategoryIDs, ", "))
			}
			if !it.Date.IsZero() {
				fmt.Fprintf(out, "  Date:       %s\n", it.Date.Format("2006-01-02"))
			}
			if text := strings.TrimSpace(filter.StripTags(it.ExcerptHTML)); text != "" {
				fmt.Fprintf(out, "  Excerpt:    %s\n", text)
			}
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <slug>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete(itemPath(args[0], args[1])); err != nil {
				return fmt.Errorf("delete item: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", args[0], args[1])
			return nil
		},
	}
}
