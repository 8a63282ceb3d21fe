package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload venues from the spreadsheet",
		Long:  "Ask the server to reload venues from the spreadsheet now, discarding local edits.",
		Args:  cobra.NoArgs,
		RunE:  runRefresh,
	}
}

func runRefresh(cmd *cobra.Command, args []string) error {
	res, err := newAPIClient().Refresh()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), res)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d venues\n", res.Message, res.Count)
	if res.Fallback {
		fmt.Fprintf(out, "Using sample venues (%s)\n", res.Reason)
	}
	return nil
}
