// Package cli defines the cobra command tree for venue-finder.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/venue-finder/internal/client"
)

var (
	flagFormat string
	flagDB     string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vf",
		Short:         "Find coffee shops, restaurants, and bars nearby",
		Long:          "A tool to browse venues from a shared spreadsheet. Filter by type, search, sort by distance from where you are, and serve the venue API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "geocode cache database path (default: ~/.venue-finder/geocode.db)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "server config file (default: ~/.config/vf/server.yaml)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newRemoveCmd(),
		newRefreshCmd(),
		newServeCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the venue-finder API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
