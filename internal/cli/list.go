package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/venue-finder/internal/client"
	"github.com/evcraddock/venue-finder/internal/venue"
)

func newListCmd() *cobra.Command {
	var (
		venueType string
		search    string
		loc       locationFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List venues",
		Long:  "List venues, optionally filtered by type and search text. With --lat and --lng, venues are sorted by distance from that point.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := venue.ParseFilterType(venueType); err != nil {
				return err
			}
			location, err := loc.location(cmd)
			if err != nil {
				return err
			}
			return runList(cmd, client.ListOptions{Type: venueType, Search: search, Location: location})
		},
	}

	cmd.Flags().StringVar(&venueType, "type", "", "venue type to show (all|coffee|restaurant|bar)")
	cmd.Flags().StringVar(&search, "search", "", "text to match in name or description")
	loc.register(cmd)

	return cmd
}

func runList(cmd *cobra.Command, opts client.ListOptions) error {
	venues, err := newAPIClient().ListVenues(opts)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), venues)
	}

	return printVenueTable(cmd.OutOrStdout(), venues, opts.Location != nil, time.Now())
}
