// Package mapview draws a trip on a map widget: one marker per stop, one
// polyline per route leg, and a viewport fitted over all stops.
//
// A Renderer owns every marker and layer it puts on its Canvas and removes
// them itself before each redraw, so it never needs to query the canvas.
package mapview

import (
	"log/slog"

	"github.com/paulmach/orb"

	"github.com/pkordes/eld-logbook/internal/domain"
)

// Stop marker colours.
const (
	ColorStart   = "#3887be"
	ColorPickup  = "#f7b731"
	ColorDropoff = "#e74c3c"
	// ColorEnd marks the destination in the two-stop view.
	ColorEnd = "#f30"
)

// Handle identifies one marker or layer on a Canvas.
type Handle int

// Marker is a point symbol, optionally labelled.
type Marker struct {
	Point orb.Point
	Color string
	Label string
}

// Line is a route polyline.
type Line struct {
	Path    orb.LineString
	Color   string
	Width   float64
	Opacity float64
	Dashed  bool
}

// Canvas is the map widget a Renderer draws on.
type Canvas interface {
	AddMarker(m Marker) Handle
	AddLine(l Line) Handle
	Remove(h Handle)
	FitBounds(b orb.Bound, padding int)
}

// Options select the view variant.
type Options struct {
	// Stops is 2 (start and destination) or 3 (start, pickup, dropoff).
	// Zero means 3.
	Stops int
	// Labels attaches each stop's label to its marker.
	Labels bool
	Logger *slog.Logger
}

// Stop is a location on the map. Coordinates are [lng, lat]; a missing or
// short pair is drawn at domain.FallbackCoordinates.
type Stop struct {
	Coordinates []float64
	Label       string
}

// Scene is what one Update draws. Legs[0] runs start → pickup and Legs[1]
// pickup → dropoff; in the two-stop view Legs[0] runs start → dropoff.
// Empty legs are not drawn.
type Scene struct {
	Start   Stop
	Pickup  Stop
	Dropoff Stop
	Legs    []orb.LineString
}

// Renderer is an owned handle on one map widget. Create it with New, redraw
// with Update and release everything with Destroy.
type Renderer struct {
	canvas  Canvas
	opts    Options
	logger  *slog.Logger
	markers []Handle
	layers  []Handle
}

// New creates a Renderer drawing on canvas.
func New(canvas Canvas, opts Options) *Renderer {
	if opts.Stops != 2 {
		opts.Stops = 3
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{canvas: canvas, opts: opts, logger: logger}
}

// Update clears the previous drawing and draws s.
func (r *Renderer) Update(s Scene) {
	r.clear()

	type placed struct {
		stop  Stop
		color string
	}
	stops := []placed{{s.Start, ColorStart}, {s.Pickup, ColorPickup}, {s.Dropoff, ColorDropoff}}
	padding := 100
	if r.opts.Stops == 2 {
		stops = []placed{{s.Start, ColorStart}, {s.Dropoff, ColorEnd}}
		padding = 80
	}

	var bound orb.Bound
	for i, p := range stops {
		pt := r.point(p.stop)
		m := Marker{Point: pt, Color: p.color}
		if r.opts.Labels {
			m.Label = p.stop.Label
		}
		r.markers = append(r.markers, r.canvas.AddMarker(m))
		if i == 0 {
			bound = pt.Bound()
		} else {
			bound = bound.Extend(pt)
		}
	}

	for i, leg := range s.Legs {
		if i >= r.opts.Stops-1 {
			break
		}
		if len(leg) < 2 {
			continue
		}
		r.layers = append(r.layers, r.canvas.AddLine(Line{
			Path:    leg,
			Color:   ColorStart,
			Width:   5,
			Opacity: 0.75,
			Dashed:  i == 1,
		}))
	}

	r.canvas.FitBounds(bound, padding)
}

// Destroy removes everything the Renderer has drawn. The Renderer may be
// reused with Update afterwards.
func (r *Renderer) Destroy() {
	r.clear()
}

// Markers and Layers report how many handles the Renderer currently owns.
func (r *Renderer) Markers() int { return len(r.markers) }
func (r *Renderer) Layers() int  { return len(r.layers) }

func (r *Renderer) clear() {
	for _, h := range r.markers {
		r.canvas.Remove(h)
	}
	for _, h := range r.layers {
		r.canvas.Remove(h)
	}
	r.markers = r.markers[:0]
	r.layers = r.layers[:0]
}

func (r *Renderer) point(s Stop) orb.Point {
	c, ok := domain.CoordinatesFromLngLat(s.Coordinates)
	if !ok {
		r.logger.Warn("invalid coordinates, using fallback",
			"label", s.Label,
			"coordinates", s.Coordinates,
		)
	}
	return orb.Point{c.Lng, c.Lat}
}
