package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/discovery"
)

func newBrowseCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse available listings",
		Long:  "Fetch both catalogs and list the available lands and rentals. When the marketplace is unreachable, falls back to the most recently cached listings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(kindFlag)
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "limit to one catalog (sale|rent)")

	return cmd
}

func runBrowse(kindFlag string) error {
	if kindFlag != "" && !catalog.ValidKind(kindFlag) {
		return fmt.Errorf("unknown catalog %q (want sale or rent)", kindFlag)
	}

	agg := newAggregator()
	view := agg.LoadAll()

	repo, db, err := openCache()
	if err != nil {
		fmt.Printf("warning: catalog cache unavailable: %v\n", err)
	} else {
		defer closeCache(db)
	}

	kinds := catalog.Kinds
	if kindFlag != "" {
		kinds = []catalog.Kind{catalog.Kind(kindFlag)}
	}

	if isJSON() {
		return printJSON(view)
	}

	for _, kind := range kinds {
		cv := view.ForKind(kind)
		listings := cv.Listings
		cached := false

		if repo != nil {
			if cv.Degraded {
				// The remote failed for this catalog; show what we have.
				if fallback, err := repo.ListCatalog(kind); err == nil && len(fallback) > 0 {
					listings = fallback
					cached = true
				}
			} else if err := repo.ReplaceCatalog(kind, listings); err != nil {
				fmt.Printf("warning: caching %s catalog: %v\n", kind, err)
			}
		}

		printCatalogSection(kind, discovery.CatalogView{
			Listings: listings,
			Degraded: cv.Degraded,
		}, cached)
	}

	return nil
}
