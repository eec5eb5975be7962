package mapview

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

const (
	defaultTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultAttrib  = `&copy; <a href="https://www.openstreetmap.org/">OpenStreetMap</a> contributors`
)

// LeafletEngine builds map sessions that render to a self-contained
// Leaflet HTML fragment, suitable for embedding in a page or writing to
// a standalone file.
type LeafletEngine struct {
	TileURL     string
	Attribution string
}

// NewLeafletEngine creates an engine using the public OSM tile server.
func NewLeafletEngine() *LeafletEngine {
	return &LeafletEngine{TileURL: defaultTileURL, Attribution: defaultAttrib}
}

// NewSession implements Engine.
func (e *LeafletEngine) NewSession(v Viewport) (Session, error) {
	return &leafletSession{engine: e, viewport: v}, nil
}

// leafletSession accumulates markers and the camera position, then
// renders them as Leaflet initialization script.
type leafletSession struct {
	engine   *LeafletEngine
	viewport Viewport
	markers  []Marker
	closed   bool
}

func (s *leafletSession) AddMarker(m Marker) error {
	if s.closed {
		return fmt.Errorf("session is closed")
	}
	s.markers = append(s.markers, m)
	return nil
}

func (s *leafletSession) SetView(v Viewport) error {
	if s.closed {
		return fmt.Errorf("session is closed")
	}
	s.viewport = v
	return nil
}

func (s *leafletSession) Close() error {
	if s.closed {
		return fmt.Errorf("session already closed")
	}
	s.closed = true
	s.markers = nil
	return nil
}

// Markers returns the attached markers, for inspection.
func (s *leafletSession) Markers() []Marker {
	return s.markers
}

// HTML renders the session as a map container plus its setup script.
func (s *leafletSession) HTML() (template.HTML, error) {
	if s.closed {
		return "", fmt.Errorf("session is closed")
	}

	var b strings.Builder
	b.WriteString(`<div id="map" style="height: 500px; width: 100%; border-radius: 10px;"></div>` + "\n")
	b.WriteString("<script>\n")
	fmt.Fprintf(&b, "const map = L.map(\"map\").setView([%g, %g], %d);\n",
		s.viewport.Latitude, s.viewport.Longitude, s.viewport.Zoom)

	tileURL, err := jsString(s.engine.TileURL)
	if err != nil {
		return "", err
	}
	attrib, err := jsString(s.engine.Attribution)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "L.tileLayer(%s, { attribution: %s }).addTo(map);\n", tileURL, attrib)

	for _, m := range s.markers {
		label, err := jsString(m.Label)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "L.marker([%g, %g]).addTo(map).bindPopup(%s);\n",
			m.Latitude, m.Longitude, label)
	}

	b.WriteString("</script>\n")
	return template.HTML(b.String()), nil
}

// jsString encodes a value as a JavaScript string literal.
func jsString(v string) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding script literal: %w", err)
	}
	return string(out), nil
}
