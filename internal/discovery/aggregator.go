// Package discovery merges the sale and rental catalogs into one
// consistent, searchable view.
package discovery

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/evcraddock/landx/internal/catalog"
)

// Source is the catalog backend the aggregator fans out to.
type Source interface {
	FetchCatalog(kind catalog.Kind) ([]catalog.Listing, error)
	SearchCatalog(kind catalog.Kind, query string) ([]catalog.Listing, error)
}

// CatalogView is the resolved state of one catalog.
type CatalogView struct {
	Listings []catalog.Listing
	// Filtered is true when Listings are active search results rather
	// than the unfiltered baseline.
	Filtered bool
	// Degraded is true when the most recent fetch or search for this
	// catalog failed. Lets callers tell "no results" from "fetch failed".
	Degraded bool
}

// View is one published snapshot of both catalogs.
type View struct {
	// Revision increases every time a load or search replaces the
	// underlying listing set, even if the contents are equal. Consumers
	// holding a stateful resource keyed to the listing set (the map)
	// rebuild it when the revision changes.
	Revision uint64
	Query    string
	Sale     CatalogView
	Rental   CatalogView
}

// ForKind returns the view of one catalog.
func (v View) ForKind(kind catalog.Kind) CatalogView {
	if kind == catalog.KindRental {
		return v.Rental
	}
	return v.Sale
}

// Listings returns both catalogs' visible listings, sale first.
func (v View) Listings() []catalog.Listing {
	out := make([]catalog.Listing, 0, len(v.Sale.Listings)+len(v.Rental.Listings))
	out = append(out, v.Sale.Listings...)
	out = append(out, v.Rental.Listings...)
	return out
}

// slot is the mutable state of one catalog.
type slot struct {
	baseline []catalog.Listing
	results  []catalog.Listing
	degraded bool
	// issued is the sequence number of the newest request sent for this
	// slot. A completion with an older sequence is stale and discarded.
	issued uint64
}

// Aggregator owns the baseline and search state of both catalogs.
// All mutation goes through LoadAll and Search; consumers read snapshots.
type Aggregator struct {
	mu       sync.Mutex
	src      Source
	query    string
	revision uint64
	seq      uint64
	loaded   bool
	slots    map[catalog.Kind]*slot
}

// New creates an aggregator over the given catalog source.
func New(src Source) *Aggregator {
	return &Aggregator{
		src: src,
		slots: map[catalog.Kind]*slot{
			catalog.KindSale:   {},
			catalog.KindRental: {},
		},
	}
}

// fetched is one completed catalog request.
type fetched struct {
	kind     catalog.Kind
	seq      uint64
	listings []catalog.Listing
	err      error
}

// LoadAll fetches both catalogs concurrently and replaces the baselines.
// A failed catalog becomes empty and is flagged degraded; the other
// catalog is unaffected. The new view is published only after both
// requests complete.
func (a *Aggregator) LoadAll() View {
	results := a.fanOut(func(kind catalog.Kind) ([]catalog.Listing, error) {
		return a.src.FetchCatalog(kind)
	})

	a.mu.Lock()
	defer a.mu.Unlock()

	applied := false
	for _, r := range results {
		s := a.slots[r.kind]
		if r.seq < s.issued {
			continue // a newer request owns this slot
		}
		if r.err != nil {
			slog.Warn("catalog fetch failed", "catalog", string(r.kind), "error", r.err)
			s.baseline = []catalog.Listing{}
			s.degraded = true
		} else {
			s.baseline = r.listings
			s.degraded = false
		}
		applied = true
	}
	if applied {
		a.revision++
		a.loaded = true
	}
	return a.snapshot()
}

// Loaded reports whether a baseline load has ever completed. Callers
// searching a fresh aggregator load first, so a search that matches
// nothing has a real baseline to fall back to.
func (a *Aggregator) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

// Search runs a text search across both catalogs concurrently and
// replaces each catalog's search results with whatever came back,
// including nothing. A query that trims to empty is a no-op and leaves
// any active search in place.
func (a *Aggregator) Search(query string) View {
	query = strings.TrimSpace(query)
	if query == "" {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.snapshot()
	}

	results := a.fanOut(func(kind catalog.Kind) ([]catalog.Listing, error) {
		return a.src.SearchCatalog(kind, query)
	})

	a.mu.Lock()
	defer a.mu.Unlock()

	applied := false
	for _, r := range results {
		s := a.slots[r.kind]
		if r.seq < s.issued {
			continue
		}
		if r.err != nil {
			slog.Warn("catalog search failed",
				"catalog", string(r.kind), "query", query, "error", r.err)
			s.results = []catalog.Listing{}
			s.degraded = true
		} else {
			s.results = r.listings
			s.degraded = false
		}
		applied = true
	}
	if applied {
		a.query = query
		a.revision++
	}
	return a.snapshot()
}

// View returns the current snapshot without touching the network.
func (a *Aggregator) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

// fanOut issues one request per catalog before waiting on either, then
// collects both completions.
func (a *Aggregator) fanOut(call func(catalog.Kind) ([]catalog.Listing, error)) []fetched {
	a.mu.Lock()
	seqs := make(map[catalog.Kind]uint64, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		a.seq++
		a.slots[kind].issued = a.seq
		seqs[kind] = a.seq
	}
	a.mu.Unlock()

	var wg sync.WaitGroup
	out := make([]fetched, len(catalog.Kinds))
	for i, kind := range catalog.Kinds {
		i, kind := i, kind
		wg.Add(1)
		go func() {
			defer wg.Done()
			listings, err := call(kind)
			out[i] = fetched{kind: kind, seq: seqs[kind], listings: listings, err: err}
		}()
	}
	wg.Wait()
	return out
}

// snapshot resolves the merged view under the fallback policy: each
// catalog independently shows its search results when non-empty,
// otherwise its baseline. Callers must hold a.mu.
func (a *Aggregator) snapshot() View {
	v := View{Revision: a.revision, Query: a.query}
	v.Sale = a.resolve(catalog.KindSale)
	v.Rental = a.resolve(catalog.KindRental)
	return v
}

func (a *Aggregator) resolve(kind catalog.Kind) CatalogView {
	s := a.slots[kind]
	if len(s.results) > 0 {
		return CatalogView{Listings: s.results, Filtered: true, Degraded: s.degraded}
	}
	return CatalogView{Listings: s.baseline, Degraded: s.degraded}
}
