package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var f venueFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a venue",
		Long:  "Change the fields given as flags. Use --clear to remove optional fields, e.g. --clear rating --clear hours.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args, &f)
		},
	}

	f.register(cmd)
	cmd.Flags().StringSliceVar(&f.clear, "clear", nil, "optional fields to clear")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string, f *venueFlags) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid venue ID: %s", args[0])
	}

	p, err := f.patch(cmd)
	if err != nil {
		return err
	}

	v, err := newAPIClient().UpdateVenue(id, p)
	if err != nil {
		return fmt.Errorf("updating venue: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), v)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Venue #%d updated.\n", v.ID)
	printVenueSummary(cmd.OutOrStdout(), v, false, time.Now())
	return nil
}
