// Package geo provides the geographic primitives shared by the instance
// generator and the routing oracle adapter.
package geo

import "math"

// Location is a geographic coordinate pair, longitude first, stored at
// single precision to match the wire format of the Instance file.
type Location struct {
	Longitude float32 `json:"longitude"`
	Latitude  float32 `json:"latitude"`
}

// Valid reports whether l has finite coordinates.
func (l Location) Valid() bool {
	return !math.IsNaN(float64(l.Longitude)) && !math.IsInf(float64(l.Longitude), 0) &&
		!math.IsNaN(float64(l.Latitude)) && !math.IsInf(float64(l.Latitude), 0)
}

// BoundingBox is an axis-aligned rectangle in longitude/latitude space.
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
}

// Valid reports whether b has finite, correctly ordered bounds.
func (b BoundingBox) Valid() bool {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	if !finite(b.MinLon) || !finite(b.MaxLon) || !finite(b.MinLat) || !finite(b.MaxLat) {
		return false
	}
	return b.MinLon <= b.MaxLon && b.MinLat <= b.MaxLat
}

// Contains reports whether l falls within b, bounds inclusive.
func (b BoundingBox) Contains(l Location) bool {
	lon, lat := float64(l.Longitude), float64(l.Latitude)
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// Belgium is the default bounding box used by the generator when the caller
// does not supply one: roughly the land area of Belgium.
var Belgium = BoundingBox{
	MinLon: 2.5,
	MaxLon: 6.4,
	MinLat: 49.5,
	MaxLat: 51.5,
}
