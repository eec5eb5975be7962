// Package cli defines the cobra command tree for landx.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/auth"
	"github.com/evcraddock/landx/internal/cache"
	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/config"
	"github.com/evcraddock/landx/internal/discovery"
	"github.com/evcraddock/landx/internal/geo"
)

var (
	flagFormat string
	flagAPI    string
	flagCache  string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "landx",
		Short:         "Browse and search land listings",
		Long:          "A client for the Digital Land Exchange. Browse and search land for sale and for rent, view listings on a map, look up places, and submit new listings.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagAPI, "api", "", "marketplace API base URL (default: from env or http://localhost:5000)")
	root.PersistentFlags().StringVar(&flagCache, "cache", "", "catalog cache path (default: ~/.landx/catalog.db)")

	root.AddCommand(
		newBrowseCmd(),
		newSearchCmd(),
		newShowCmd(),
		newLookupCmd(),
		newMapCmd(),
		newSubmitLandCmd(),
		newSubmitRentCmd(),
		newServeCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// apiBaseURL resolves the marketplace address: flag, then env config,
// then the stored CLI config, then the local-development default.
func apiBaseURL() string {
	if flagAPI != "" {
		return flagAPI
	}
	if v := os.Getenv("LANDX_API_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.APIURL != "" {
		return cfg.APIURL
	}
	return catalog.DefaultBaseURL
}

// authContext builds the auth context from the stored token.
func authContext() *auth.Context {
	cfg, err := loadConfig()
	if err != nil {
		return auth.NewContext("")
	}
	return auth.NewContext(cfg.Token)
}

// newCatalogClient creates a marketplace client with the stored credentials.
func newCatalogClient() *catalog.Client {
	return catalog.NewClient(apiBaseURL(), authContext())
}

// newAggregator creates a discovery aggregator over the marketplace.
func newAggregator() *discovery.Aggregator {
	return discovery.New(newCatalogClient())
}

// newGeocoder creates a place lookup client from the environment config.
func newGeocoder() *geo.Geocoder {
	return geo.NewGeocoder(config.Load().GeocoderURL)
}

// openCache opens the local catalog cache using the --cache flag, env
// config, or the default path.
func openCache() (*cache.Repository, *sql.DB, error) {
	path := flagCache
	if path == "" {
		path = config.Load().CachePath
	}
	if path == "" {
		var err error
		path, err = cache.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := cache.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRepository(db), db, nil
}

// closeCache closes the cache database, logging any error to stderr.
func closeCache(db *sql.DB) {
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing cache: %v\n", err)
	}
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
