package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/config"
	"github.com/evcraddock/landx/internal/geo"
	"github.com/evcraddock/landx/internal/logging"
	"github.com/evcraddock/landx/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the discovery web UI",
		Long:  "Start an HTTP server that renders the listing cards, live search, and map.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	return cmd
}

func runServe(port int) error {
	cfg := config.Load()
	logging.Setup(cfg.DevMode)

	server, err := web.NewServer(
		newAggregator(),
		geo.NewGeocoder(cfg.GeocoderURL),
		newCatalogClient(),
	)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := server.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing server: %v\n", cerr)
		}
	}()

	return server.ListenAndServe(port)
}
