package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/discovery"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCatalogSection prints one catalog's listings as a table, with
// the empty-state and degraded messages.
func printCatalogSection(kind catalog.Kind, cv discovery.CatalogView, cached bool) {
	header := kind.Label()
	if cached {
		header += " (cached)"
	}
	fmt.Printf("\n%s\n", header)

	if len(cv.Listings) == 0 {
		if kind == catalog.KindRental {
			fmt.Println("No rentals available.")
		} else {
			fmt.Println("No lands available.")
		}
		if cv.Degraded {
			fmt.Println("(the marketplace could not be reached)")
		}
		return
	}

	if err := printListingTable(cv.Listings); err != nil {
		fmt.Fprintf(os.Stderr, "warning: printing listings: %v\n", err)
	}
}

// printListingTable prints listings as a formatted table.
func printListingTable(listings []catalog.Listing) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tPRICE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t--------\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range listings {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			l.ID, truncate(l.Title, 40), truncate(l.DisplayLocation(), 30), l.DisplayPrice()); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("Total: %d listings\n", len(listings))
	return nil
}

// printListingDetail prints a single listing in text format.
func printListingDetail(l *catalog.Listing, baseURL string) {
	fmt.Printf("%s [%s]\n", l.Title, l.ID)
	fmt.Printf("  Catalog:   %s\n", l.Kind)
	fmt.Printf("  Location:  %s\n", l.DisplayLocation())
	fmt.Printf("  Price:     %s\n", l.DisplayPrice())
	if l.Size != "" {
		fmt.Printf("  Size:      %s\n", l.Size)
	}
	if l.Description != "" {
		fmt.Printf("  About:     %s\n", l.Description)
	}
	if l.HasCoordinates() {
		fmt.Printf("  Position:  %g, %g\n", *l.Latitude, *l.Longitude)
	}
	if url := l.ImageURL(baseURL); url != "" {
		fmt.Printf("  Image:     %s\n", url)
	}
	if l.Seller != nil {
		fmt.Printf("  Seller:    %s (%s)\n", l.Seller.Name, l.Seller.Email)
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
