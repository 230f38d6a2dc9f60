package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/showcase/internal/audit"
)

func newAuditCmd() *cobra.Command {
	var checksFile string

	cmd := &cobra.Command{
		Use:   "audit <url>",
		Short: "Check a rendered page for title, meta and heading tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := audit.DefaultChecks()
			if checksFile != "" {
				var err error
				if checks, err = audit.LoadChecks(checksFile); err != nil {
					return err
				}
			}

			report, err := audit.Run(cmd.Context(), client.HTTPClient, args[0], checks)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (HTTP %d)\n", report.URL, report.Status)
			for _, r := range report.Results {
				mark := "PASS"
				if !r.Passed {
					mark = "FAIL"
				}
				fmt.Fprintf(out, "  %s  %-20s  %s\n", mark, r.Name, r.Detail)
			}

			if failed := report.Failures(); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(report.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&checksFile, "checks", "", "YAML file with checks to run instead of the defaults")
	return cmd
}
