package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and auth status",
		Long:  "Tests the connection to the marketplace and reports whether a token is stored.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	baseURL := apiBaseURL()
	ctx := authContext()

	fmt.Printf("Marketplace: %s\n", baseURL)

	if !ctx.Authenticated() {
		fmt.Println("Token:       not stored")
		fmt.Println("\nRun 'landx login' to authenticate before submitting listings.")
	} else {
		prefix := ctx.Token
		if len(prefix) > 8 {
			prefix = prefix[:8]
		}
		fmt.Printf("Token:       %s…\n", prefix)
	}

	// Probe the catalog endpoint to verify reachability.
	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest("GET", baseURL+"/api/lands", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	ctx.Apply(req)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Status:      ✗ cannot reach marketplace (%v)\n", err)
		return nil
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		fmt.Println("Status:      ✓ connected")
	case resp.StatusCode == http.StatusUnauthorized:
		fmt.Println("Status:      ✗ token rejected")
		fmt.Println("\nRun 'landx login' to re-authenticate.")
	default:
		fmt.Printf("Status:      ✗ unexpected response (%d)\n", resp.StatusCode)
	}

	return nil
}
