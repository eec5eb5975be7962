package web

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/discovery"
	"github.com/evcraddock/landx/internal/geo"
)

type homeData struct {
	View          discovery.View
	Query         string
	Place         string
	LookupMessage string
	MapHTML       template.HTML
	MapError      bool
}

type detailData struct {
	Listing  *catalog.Listing
	ImageURL string
}

// handleHome renders the discovery view. The q parameter runs a catalog
// search; the place parameter runs a geocode lookup that repositions the
// map without touching the listing set.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	place := strings.TrimSpace(r.URL.Query().Get("place"))

	var view discovery.View
	if query != "" {
		// A search on a fresh server has no baselines yet; load them
		// first so empty results can fall back to the full catalogs.
		if !s.aggregator.Loaded() {
			s.aggregator.LoadAll()
		}
		view = s.aggregator.Search(query)
	} else {
		view = s.aggregator.LoadAll()
	}

	data := homeData{View: view, Query: query, Place: place}
	data.MapHTML, data.LookupMessage, data.MapError = s.reconcileMap(view, place)

	s.render(w, "home.html", data)
}

// reconcileMap rebuilds the map for the given view, applies an optional
// place lookup, and renders the session. Lookup failures produce a
// user-facing message and leave the map untouched.
func (s *Server) reconcileMap(view discovery.View, place string) (template.HTML, string, bool) {
	s.presenterMu.Lock()
	defer s.presenterMu.Unlock()

	if err := s.presenter.Present(view.Revision, view.Listings()); err != nil {
		// Session creation failure degrades the page to cards-only;
		// the presenter retries on the next request.
		return "", "", true
	}

	var message string
	if place != "" {
		pt, err := s.resolver.Resolve(place)
		switch {
		case err == nil:
			if err := s.presenter.ShowPlace(*pt); err != nil {
				message = "Could not move the map to that place."
			}
		case errors.Is(err, geo.ErrNotFound):
			message = "Place not found. Try another name."
		default:
			message = "Place lookup is unavailable right now."
		}
	}

	html, err := s.presenter.RenderHTML()
	if err != nil {
		return "", message, true
	}
	return html, message, false
}

// handleDetail renders a single listing page, routed by catalog.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	kind := catalog.KindSale
	prefix := "/land/"
	if strings.HasPrefix(r.URL.Path, "/rent/") {
		kind = catalog.KindRental
		prefix = "/rent/"
	}

	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	listing, err := s.details.GetListing(kind, id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "The marketplace is unreachable right now.", http.StatusBadGateway)
		return
	}

	s.render(w, "detail.html", detailData{
		Listing:  listing,
		ImageURL: listing.ImageURL(s.details.BaseURL()),
	})
}
