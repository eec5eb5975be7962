package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/landx/internal/geo"
	"github.com/evcraddock/landx/internal/mapview"
)

func newMapCmd() *cobra.Command {
	var out string
	var place string
	var query string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render the listing map to a file",
		Long:  "Fetch the current listings and write a standalone Leaflet map page. Listings without coordinates are skipped. With --place the map is centered on a place lookup.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(out, query, place)
		},
	}

	cmd.Flags().StringVar(&out, "out", "map.html", "output file")
	cmd.Flags().StringVar(&query, "query", "", "narrow listings with a catalog search first")
	cmd.Flags().StringVar(&place, "place", "", "center the map on a place lookup")

	return cmd
}

func runMap(out, query, place string) error {
	agg := newAggregator()
	view := agg.LoadAll()
	if query != "" {
		view = agg.Search(query)
	}

	presenter := mapview.NewPresenter(mapview.NewLeafletEngine())
	defer func() {
		if err := presenter.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing map: %v\n", err)
		}
	}()

	if err := presenter.Present(view.Revision, view.Listings()); err != nil {
		return err
	}

	if place != "" {
		pt, err := newGeocoder().Resolve(place)
		if errors.Is(err, geo.ErrNotFound) {
			return fmt.Errorf("place not found: %q (try another name)", place)
		}
		if err != nil {
			return fmt.Errorf("place lookup unavailable: %w", err)
		}
		if err := presenter.ShowPlace(*pt); err != nil {
			return err
		}
	}

	fragment, err := presenter.RenderHTML()
	if err != nil {
		return err
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Land Locations</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
</head>
<body>
%s</body>
</html>
`, fragment)

	if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
		return fmt.Errorf("writing map file: %w", err)
	}

	fmt.Printf("Wrote %s (%d markers)\n", out, presenter.MarkerCount())
	return nil
}
