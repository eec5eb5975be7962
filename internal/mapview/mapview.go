// Package mapview manages the lifecycle of the interactive listing map.
//
// The map is an expensive stateful resource. The Presenter is its only
// owner: it creates exactly one live session at a time, rebuilds it when
// the listing set changes, and tears it down deterministically.
package mapview

import "html/template"

// Viewport is a map camera position.
type Viewport struct {
	Latitude  float64
	Longitude float64
	Zoom      int
}

// DefaultViewport is used when no listing carries coordinates.
var DefaultViewport = Viewport{Latitude: 20.5937, Longitude: 78.9629, Zoom: 5}

// placeZoom is the zoom applied after a successful place lookup.
const placeZoom = 12

// Marker is one pin on the map.
type Marker struct {
	ID        string
	Latitude  float64
	Longitude float64
	Label     string
}

// Session is a live map resource. Implementations are not safe for
// concurrent use; the Presenter serializes access.
type Session interface {
	// AddMarker attaches a marker to the session.
	AddMarker(m Marker) error
	// SetView moves the camera.
	SetView(v Viewport) error
	// Close releases the session and every attached marker. A session
	// must not be used after Close.
	Close() error
}

// Engine creates map sessions.
type Engine interface {
	NewSession(v Viewport) (Session, error)
}

// Renderer is implemented by sessions that can render themselves as an
// embeddable HTML fragment.
type Renderer interface {
	HTML() (template.HTML, error)
}

// State is the presenter's lifecycle state.
type State int

const (
	StateUnmounted State = iota
	StateInitializing
	StateReady
	StateDestroying
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDestroying:
		return "destroying"
	}
	return "unknown"
}
