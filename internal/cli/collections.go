package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/showcase/pkg/model"
)

func newCollectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the configured collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/collections")
			if err != nil {
				return fmt.Errorf("list collections: %w", err)
			}

			var data []model.Collection
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s  %-20s  %-16s  %-8s  %s\n", "NAME", "PATH", "TAXONOMY", "PER PAGE", "FEATURED")
			fmt.Fprintf(out, "%-16s  %-20s  %-16s  %-8s  %s\n", "----", "----", "--------", "--------", "--------")
			for _, c := range data {
				fmt.Fprintf(out, "%-16s  %-20s  %-16s  %-8d  %t\n", c.Name, c.Path, c.Taxonomy, c.ItemsPerPage, c.FeaturedField)
			}
			return nil
		},
	}
}
