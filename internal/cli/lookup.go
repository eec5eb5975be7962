package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/geo"
)

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <place>",
		Short: "Look up a place name",
		Long:  "Resolve a free-text place name to coordinates using OpenStreetMap.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(strings.Join(args, " "))
		},
	}
}

func runLookup(place string) error {
	pt, err := newGeocoder().Resolve(place)
	if errors.Is(err, geo.ErrNotFound) {
		return fmt.Errorf("place not found: %q (try another name)", place)
	}
	if err != nil {
		return fmt.Errorf("place lookup unavailable: %w", err)
	}

	if isJSON() {
		return printJSON(pt)
	}

	fmt.Printf("%s\n", pt.Label)
	fmt.Printf("  Position: %g, %g\n", pt.Latitude, pt.Longitude)
	return nil
}
