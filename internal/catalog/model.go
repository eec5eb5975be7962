// Package catalog provides the listing domain model and the HTTP client
// for the remote land-marketplace catalogs.
package catalog

import "fmt"

// Kind identifies which catalog a listing belongs to.
type Kind string

const (
	KindSale   Kind = "sale"
	KindRental Kind = "rent"
)

// Kinds lists both catalogs in display order.
var Kinds = []Kind{KindSale, KindRental}

// ValidKind returns true if s names a known catalog.
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindSale, KindRental:
		return true
	}
	return false
}

// apiPath returns the API collection segment for the catalog
// ("lands" for sale, "rents" for rentals).
func (k Kind) apiPath() string {
	if k == KindRental {
		return "rents"
	}
	return "lands"
}

// wrapperKey returns the object key the server may wrap a catalog
// response under.
func (k Kind) wrapperKey() string {
	if k == KindRental {
		return "rents"
	}
	return "lands"
}

// Label returns a human-readable catalog name.
func (k Kind) Label() string {
	if k == KindRental {
		return "Rentals"
	}
	return "Lands"
}

// DetailRoute returns the local route for a listing's detail page.
func (k Kind) DetailRoute(id string) string {
	if k == KindRental {
		return "/rent/" + id
	}
	return "/land/" + id
}

// Seller is the contact embedded in a detail response.
type Seller struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Listing is one property record from either catalog.
type Listing struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Price       *float64 `json:"price,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Size        string   `json:"size,omitempty"`
	Image       string   `json:"image,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Seller      *Seller  `json:"seller,omitempty"`

	// Kind is assigned during normalization, not sent by the server.
	Kind Kind `json:"-"`
}

// HasCoordinates returns true if the listing can be placed on a map.
func (l Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// DisplayLocation returns the location, or "N/A" when absent.
func (l Listing) DisplayLocation() string {
	if l.Location == "" {
		return "N/A"
	}
	return l.Location
}

// DisplayPrice returns the price, or "N/A" when absent.
// Rental prices carry the duration suffix when one is set.
func (l Listing) DisplayPrice() string {
	if l.Price == nil {
		return "N/A"
	}
	price := formatAmount(*l.Price)
	if l.Kind == KindRental && l.Duration != "" {
		return fmt.Sprintf("%s / %s", price, l.Duration)
	}
	return price
}

// MarkerLabel returns the label bound to the listing's map marker.
func (l Listing) MarkerLabel() string {
	loc := l.Location
	if loc == "" {
		loc = "Unknown"
	}
	return fmt.Sprintf("%s - %s", l.Title, loc)
}

// ImageURL resolves the stored image filename against the uploads base.
// Returns "" when the listing has no image.
func (l Listing) ImageURL(baseURL string) string {
	if l.Image == "" {
		return ""
	}
	return baseURL + "/uploads/" + l.Image
}

// formatAmount renders a price without trailing decimal noise.
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
