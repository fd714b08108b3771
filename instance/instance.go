// Package instance defines the persisted TSP problem artifact: a set of
// destinations and the pairwise travel-cost matrix between them.
package instance

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/geotsp/ddtsp/geo"
)

// MaxCities is the largest instance size supported by the bitset-based
// solver state (§9, Bitset cap).
const MaxCities = 64

// Instance is a destinations-plus-cost-matrix problem artifact. Once
// constructed by the generator it is treated as immutable.
type Instance struct {
	Destinations []geo.Location `json:"destinations"`
	Distances    [][]float32    `json:"distances"`
}

// New builds an Instance, validating the shape invariants described in
// §3 (1 ≤ n ≤ 64, square non-negative finite matrix).
func New(destinations []geo.Location, distances [][]float32) (*Instance, error) {
	n := len(destinations)
	if n < 1 || n > MaxCities {
		return nil, fmt.Errorf("instance: nb_cities %d out of range [1, %d]", n, MaxCities)
	}
	if len(distances) != n {
		return nil, fmt.Errorf("instance: distances has %d rows, want %d", len(distances), n)
	}
	for i, row := range distances {
		if len(row) != n {
			return nil, fmt.Errorf("instance: distances row %d has %d columns, want %d", i, len(row), n)
		}
		for j, v := range row {
			if v < 0 || isNonFinite32(v) {
				return nil, fmt.Errorf("instance: distances[%d][%d] = %v is not a valid cost", i, j, v)
			}
		}
	}
	return &Instance{Destinations: destinations, Distances: distances}, nil
}

func isNonFinite32(v float32) bool {
	return v != v || v > math.MaxFloat32 || v < -math.MaxFloat32
}

// NbCities returns the number of destinations in the instance.
func (in *Instance) NbCities() int {
	return len(in.Destinations)
}

// WriteJSON writes the pretty-printed JSON form of the instance (§6).
func (in *Instance) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(in)
}

// ReadJSON parses the JSON form of an instance.
func ReadJSON(r io.Reader) (*Instance, error) {
	var in Instance
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("instance: malformed JSON: %w", err)
	}
	return New(in.Destinations, in.Distances)
}

// WriteText writes the human-readable text form described in §6: leading
// `c`-prefixed provenance comments, then a whitespace-aligned matrix with
// cells formatted to 5 decimal places at width 15.
func (in *Instance) WriteText(w io.Writer, provenance string) error {
	if provenance != "" {
		for _, line := range strings.Split(provenance, "\n") {
			if _, err := fmt.Fprintf(w, "c %s\n", line); err != nil {
				return err
			}
		}
	}
	for _, d := range in.Destinations {
		if _, err := fmt.Fprintf(w, "c %.5f %.5f\n", d.Longitude, d.Latitude); err != nil {
			return err
		}
	}
	for _, row := range in.Distances {
		for j, v := range row {
			if j > 0 {
				if _, err := fmt.Fprint(w, " "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%15.5f", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// GeoJSON is the minimal GeoJSON Feature envelope used to expose the
// destinations as a MultiPoint geometry for external visualization.
type GeoJSON struct {
	Type     string       `json:"type"`
	Geometry GeoJSONMulti `json:"geometry"`
}

// GeoJSONMulti is a GeoJSON MultiPoint geometry.
type GeoJSONMulti struct {
	Type        string      `json:"type"`
	Coordinates [][]float32 `json:"coordinates"`
}

// Geometry returns the destinations of the instance as a GeoJSON
// MultiPoint feature, for consumption by an external rendering pipeline.
func (in *Instance) Geometry() GeoJSON {
	coords := make([][]float32, len(in.Destinations))
	for i, d := range in.Destinations {
		coords[i] = []float32{d.Longitude, d.Latitude}
	}
	return GeoJSON{
		Type: "Feature",
		Geometry: GeoJSONMulti{
			Type:        "MultiPoint",
			Coordinates: coords,
		},
	}
}
