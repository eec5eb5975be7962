package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/catalog"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search both catalogs",
		Long:  "Search the sale and rental catalogs by text. A catalog whose search matches nothing falls back to its full listing set.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "))
		},
	}
}

func runSearch(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("search query is empty")
	}

	agg := newAggregator()
	agg.LoadAll()
	view := agg.Search(query)

	if isJSON() {
		return printJSON(view)
	}

	for _, kind := range catalog.Kinds {
		cv := view.ForKind(kind)
		if !cv.Filtered {
			fmt.Printf("No %s match %q; showing all.\n", strings.ToLower(kind.Label()), query)
		}
		printCatalogSection(kind, cv, false)
	}

	return nil
}
