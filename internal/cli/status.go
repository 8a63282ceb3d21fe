package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Tests the connection to the server and reports when venues were last loaded.",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	serverURL := getServerURL()

	fmt.Fprintf(out, "Server:  %s\n", serverURL)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(out, "Status:  ✗ unexpected response (%d)\n", resp.StatusCode)
		return nil
	}

	var health struct {
		LastRefresh *time.Time `json:"lastRefresh"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		fmt.Fprintf(out, "Status:  ✗ unreadable health response (%v)\n", err)
		return nil
	}

	fmt.Fprintln(out, "Status:  ✓ connected")
	if health.LastRefresh == nil {
		fmt.Fprintln(out, "Venues:  not loaded yet")
	} else {
		fmt.Fprintf(out, "Venues:  loaded %s\n", health.LastRefresh.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
