package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var loc locationFlags

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show venue details",
		Long:  "Show full details for a venue. With --lat and --lng, also show how far away it is.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, &loc)
		},
	}

	loc.register(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string, lf *locationFlags) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid venue ID: %s", args[0])
	}
	loc, err := lf.location(cmd)
	if err != nil {
		return err
	}

	v, err := newAPIClient().GetVenue(id, loc)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), v)
	}

	printVenueSummary(cmd.OutOrStdout(), v, loc != nil, time.Now())
	return nil
}
