// Package web provides the HTTP server for the landx discovery UI.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/discovery"
	"github.com/evcraddock/landx/internal/geo"
	"github.com/evcraddock/landx/internal/logging"
	"github.com/evcraddock/landx/internal/mapview"
)

//go:embed templates/*.html
var templateFS embed.FS

// PlaceResolver resolves free-text place names. Satisfied by geo.Geocoder.
type PlaceResolver interface {
	Resolve(place string) (*geo.Point, error)
}

// DetailSource fetches single listings. Satisfied by catalog.Client.
type DetailSource interface {
	GetListing(kind catalog.Kind, id string) (*catalog.Listing, error)
	BaseURL() string
}

// Server renders the discovery view: listing cards for both catalogs,
// live search, and the map.
type Server struct {
	aggregator *discovery.Aggregator
	resolver   PlaceResolver
	details    DetailSource
	templates  *template.Template
	mux        *http.ServeMux

	// presenterMu serializes map reconciliation; the presenter is a
	// single stateful resource shared by all requests.
	presenterMu sync.Mutex
	presenter   *mapview.Presenter
}

// NewServer creates a discovery server.
func NewServer(agg *discovery.Aggregator, resolver PlaceResolver, details DetailSource) (*Server, error) {
	funcMap := template.FuncMap{
		"imageURL": func(l catalog.Listing) string {
			return l.ImageURL(details.BaseURL())
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		aggregator: agg,
		resolver:   resolver,
		details:    details,
		templates:  tmpl,
		mux:        http.NewServeMux(),
		presenter:  mapview.NewPresenter(mapview.NewLeafletEngine()),
	}

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/land/", s.handleDetail)
	s.mux.HandleFunc("/rent/", s.handleDetail)
	s.mux.HandleFunc("/health", s.handleHealth)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server with request logging.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting discovery UI on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, logging.RequestLogger(s))
}

// Close releases the map session.
func (s *Server) Close() error {
	s.presenterMu.Lock()
	defer s.presenterMu.Unlock()
	return s.presenter.Close()
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// render executes a template, reporting failures as 500s.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering page: %v", err), http.StatusInternalServerError)
	}
}
