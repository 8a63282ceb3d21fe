package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var f venueFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a venue",
		Long:  "Add a venue. It lives in the server's memory until the next refresh from the spreadsheet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, &f)
		},
	}

	f.register(cmd)
	for _, name := range []string{"name", "type", "description", "address"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runAdd(cmd *cobra.Command, f *venueFlags) error {
	v, err := newAPIClient().CreateVenue(f.input(cmd))
	if err != nil {
		return fmt.Errorf("adding venue: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), v)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Venue added successfully!")
	printVenueSummary(cmd.OutOrStdout(), v, false, time.Now())
	return nil
}
