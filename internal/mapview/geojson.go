package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSONCanvas keeps the scene in memory and serializes it as a GeoJSON
// FeatureCollection for the browser map widget. Markers become Point
// features with kind "marker"; lines become LineString features with kind
// "route". The fitted bounds go in the collection's bbox and the padding in
// a top-level "padding" member.
//
// A GeoJSONCanvas is not safe for concurrent use.
type GeoJSONCanvas struct {
	next     Handle
	order    []Handle
	features map[Handle]*geojson.Feature
	bound    *orb.Bound
	padding  int
}

var _ Canvas = (*GeoJSONCanvas)(nil)

// NewGeoJSONCanvas returns an empty canvas.
func NewGeoJSONCanvas() *GeoJSONCanvas {
	return &GeoJSONCanvas{features: make(map[Handle]*geojson.Feature)}
}

func (c *GeoJSONCanvas) AddMarker(m Marker) Handle {
	f := geojson.NewFeature(m.Point)
	f.Properties["kind"] = "marker"
	f.Properties["color"] = m.Color
	if m.Label != "" {
		f.Properties["label"] = m.Label
	}
	return c.add(f)
}

func (c *GeoJSONCanvas) AddLine(l Line) Handle {
	f := geojson.NewFeature(l.Path)
	f.Properties["kind"] = "route"
	f.Properties["color"] = l.Color
	f.Properties["width"] = l.Width
	f.Properties["opacity"] = l.Opacity
	f.Properties["dashed"] = l.Dashed
	return c.add(f)
}

func (c *GeoJSONCanvas) Remove(h Handle) {
	if _, ok := c.features[h]; !ok {
		return
	}
	delete(c.features, h)
	for i, o := range c.order {
		if o == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *GeoJSONCanvas) FitBounds(b orb.Bound, padding int) {
	c.bound = &b
	c.padding = padding
}

// Count returns the number of features of the given kind ("marker" or
// "route") currently on the canvas.
func (c *GeoJSONCanvas) Count(kind string) int {
	n := 0
	for _, f := range c.features {
		if f.Properties["kind"] == kind {
			n++
		}
	}
	return n
}

// FeatureCollection returns the scene in drawing order.
func (c *GeoJSONCanvas) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, h := range c.order {
		fc.Append(c.features[h])
	}
	if c.bound != nil {
		fc.BBox = geojson.NewBBox(*c.bound)
		fc.ExtraMembers = geojson.Properties{"padding": c.padding}
	}
	return fc
}

// MarshalJSON encodes the scene as a FeatureCollection.
func (c *GeoJSONCanvas) MarshalJSON() ([]byte, error) {
	return c.FeatureCollection().MarshalJSON()
}

func (c *GeoJSONCanvas) add(f *geojson.Feature) Handle {
	c.next++
	h := c.next
	c.features[h] = f
	c.order = append(c.order, h)
	return h
}
