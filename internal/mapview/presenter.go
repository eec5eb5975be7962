package mapview

import (
	"fmt"
	"html/template"
	"log/slog"

	"github.com/google/uuid"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/geo"
)

// Presenter owns the map session and reconciles it against the current
// listing view. At most one session is live at a time; the old session
// is fully closed before a new one is created.
type Presenter struct {
	engine  Engine
	session Session
	state   State

	// revision of the listing view the live session was built from.
	revision uint64
	// presented is false until the first view arrives, so revision 0
	// still triggers the initial build.
	presented bool

	listingMarkers int
	adhocMarkers   int
}

// NewPresenter creates an unmounted presenter over the given engine.
func NewPresenter(engine Engine) *Presenter {
	return &Presenter{engine: engine, state: StateUnmounted}
}

// State returns the current lifecycle state.
func (p *Presenter) State() State {
	return p.state
}

// MarkerCount returns the number of markers on the live session,
// listing-derived plus ad-hoc.
func (p *Presenter) MarkerCount() int {
	return p.listingMarkers + p.adhocMarkers
}

// ListingMarkerCount returns only the listing-derived marker count.
func (p *Presenter) ListingMarkerCount() int {
	return p.listingMarkers
}

// Present reconciles the map against a published listing view, given
// the view's revision and its visible listings. A revision the presenter
// has already built is a no-op; any other revision destroys the current
// session and builds a fresh one, even when the listing contents are
// identical.
func (p *Presenter) Present(revision uint64, listings []catalog.Listing) error {
	if p.presented && p.state == StateReady && revision == p.revision {
		return nil
	}

	if p.state == StateReady {
		if err := p.destroy(); err != nil {
			return err
		}
	}

	p.state = StateInitializing
	session, err := p.engine.NewSession(DefaultViewport)
	if err != nil {
		// Creation failure is fatal to this session only. The presenter
		// returns to unmounted and may retry on the next view.
		p.state = StateUnmounted
		p.presented = false
		return fmt.Errorf("creating map session: %w", err)
	}
	p.session = session

	count := 0
	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		m := Marker{
			ID:        l.ID,
			Latitude:  *l.Latitude,
			Longitude: *l.Longitude,
			Label:     l.MarkerLabel(),
		}
		if err := session.AddMarker(m); err != nil {
			// Never leave a half-built session live.
			if cerr := p.destroy(); cerr != nil {
				slog.Warn("closing failed map session", "error", cerr)
			}
			p.presented = false
			return fmt.Errorf("placing marker for listing %s: %w", l.ID, err)
		}
		count++
	}

	p.state = StateReady
	p.revision = revision
	p.presented = true
	p.listingMarkers = count
	p.adhocMarkers = 0
	slog.Debug("map session ready", "revision", p.revision, "markers", count)
	return nil
}

// ShowPlace recenters the live session on a resolved place and drops one
// ad-hoc marker. Listing markers and the lifecycle state are untouched.
func (p *Presenter) ShowPlace(pt geo.Point) error {
	if p.state != StateReady {
		return fmt.Errorf("map is not ready")
	}

	view := Viewport{Latitude: pt.Latitude, Longitude: pt.Longitude, Zoom: placeZoom}
	if err := p.session.SetView(view); err != nil {
		return fmt.Errorf("recentering map: %w", err)
	}

	m := Marker{
		ID:        uuid.NewString(),
		Latitude:  pt.Latitude,
		Longitude: pt.Longitude,
		Label:     pt.Label,
	}
	if err := p.session.AddMarker(m); err != nil {
		return fmt.Errorf("placing place marker: %w", err)
	}
	p.adhocMarkers++
	return nil
}

// RenderHTML renders the live session as an embeddable HTML fragment.
// Only available while Ready and only for engines whose sessions
// implement Renderer.
func (p *Presenter) RenderHTML() (template.HTML, error) {
	if p.state != StateReady {
		return "", fmt.Errorf("map is not ready")
	}
	r, ok := p.session.(Renderer)
	if !ok {
		return "", fmt.Errorf("map engine does not render HTML")
	}
	return r.HTML()
}

// Close tears the presenter down. Safe to call on an unmounted presenter.
func (p *Presenter) Close() error {
	if p.state != StateReady {
		p.state = StateUnmounted
		return nil
	}
	if err := p.destroy(); err != nil {
		return err
	}
	p.state = StateUnmounted
	return nil
}

// destroy releases the live session synchronously. The session is gone
// before destroy returns, so a rebuild can never overlap it.
func (p *Presenter) destroy() error {
	p.state = StateDestroying
	err := p.session.Close()
	p.session = nil
	p.listingMarkers = 0
	p.adhocMarkers = 0
	p.state = StateUnmounted
	if err != nil {
		return fmt.Errorf("closing map session: %w", err)
	}
	return nil
}
