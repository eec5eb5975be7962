package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/catalog"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <sale|rent> <id>",
		Short: "Show one listing",
		Long:  "Fetch and display a single listing, including the seller's contact when the marketplace provides one.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0], args[1])
		},
	}
}

func runShow(kindArg, id string) error {
	if !catalog.ValidKind(kindArg) {
		return fmt.Errorf("unknown catalog %q (want sale or rent)", kindArg)
	}

	client := newCatalogClient()
	listing, err := client.GetListing(catalog.Kind(kindArg), id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(listing)
	}

	printListingDetail(listing, client.BaseURL())
	return nil
}
