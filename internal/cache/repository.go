package cache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/evcraddock/landx/internal/catalog"
)

// Repository stores and loads cached baseline catalogs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ReplaceCatalog swaps one catalog's cached contents for a fresh fetch.
// The swap is transactional: a failure leaves the old cache intact.
func (r *Repository) ReplaceCatalog(kind catalog.Kind, listings []catalog.Listing) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit is a no-op.
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM listings WHERE kind = ?", string(kind)); err != nil {
		return fmt.Errorf("clearing catalog %s: %w", kind, err)
	}

	now := time.Now().UTC()
	for _, l := range listings {
		_, err := tx.Exec(
			`INSERT INTO listings
				(kind, listing_id, title, location, description, price, duration, size, image, latitude, longitude, fetched_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(kind), l.ID, l.Title, l.Location, l.Description,
			l.Price, l.Duration, l.Size, l.Image, l.Latitude, l.Longitude, now,
		)
		if err != nil {
			return fmt.Errorf("caching listing %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog %s: %w", kind, err)
	}
	return nil
}

// ListCatalog returns one catalog's cached listings.
func (r *Repository) ListCatalog(kind catalog.Kind) (listings []catalog.Listing, err error) {
	rows, err := r.db.Query(
		`SELECT listing_id, title, location, description, price, duration, size, image, latitude, longitude
			FROM listings WHERE kind = ? ORDER BY title`,
		string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("querying catalog %s: %w", kind, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var l catalog.Listing
		var price, lat, lon sql.NullFloat64
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Location, &l.Description,
			&price, &l.Duration, &l.Size, &l.Image, &lat, &lon,
		); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		if price.Valid {
			l.Price = &price.Float64
		}
		if lat.Valid {
			l.Latitude = &lat.Float64
		}
		if lon.Valid {
			l.Longitude = &lon.Float64
		}
		l.Kind = kind
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}
	return listings, nil
}

// LastFetched returns when one catalog was last cached.
// Returns the zero time when the catalog has never been cached.
func (r *Repository) LastFetched(kind catalog.Kind) (time.Time, error) {
	var fetched time.Time
	err := r.db.QueryRow(
		"SELECT fetched_at FROM listings WHERE kind = ? ORDER BY fetched_at DESC LIMIT 1",
		string(kind),
	).Scan(&fetched)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("querying fetch time: %w", err)
	}
	return fetched, nil
}
