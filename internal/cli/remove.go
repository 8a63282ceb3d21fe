package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a venue",
		Long:  "Remove a venue from the server. It comes back on the next refresh if it is still in the spreadsheet.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid venue ID: %s", args[0])
	}

	if err := newAPIClient().DeleteVenue(id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"id":      id,
			"removed": true,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Venue #%d removed.\n", id)
	return nil
}
