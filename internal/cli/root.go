package cli

import (
	"log/slog"
	"os"

	"github.com/me/showcase/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking SHOWCASE_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("SHOWCASE_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the showcase CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "showcase",
		Short: "Showcase: browse and manage listing collections",
		Long:  "showcase queries filtered, paged listings and manages the items behind them.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.FromFlags(flagLogLevel, flagLogFormat, flagDebug)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Showcase server URL (or SHOWCASE_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newCollectionsCmd(),
		newListCmd(),
		newShowCmd(),
		newDeleteCmd(),
		newImportCmd(),
		newAuditCmd(),
	)

	return root
}
