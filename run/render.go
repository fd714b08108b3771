package run

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/geotsp/ddtsp/dd"
	"github.com/geotsp/ddtsp/errs"
	"github.com/geotsp/ddtsp/instance"
)

// featureCollection is the minimal GeoJSON envelope Render emits: the
// destinations as a MultiPoint feature, plus (when a tour is supplied) a
// LineString feature tracing the visit order. The map/HTML rendering
// pipeline itself is out of scope (§6); Render is the narrow seam a
// caller can plug a real renderer into instead.
type featureCollection struct {
	Type     string `json:"type"`
	Features []any  `json:"features"`
}

type lineStringFeature struct {
	Type     string            `json:"type"`
	Geometry lineStringGeometry `json:"geometry"`
}

type lineStringGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float32 `json:"coordinates"`
}

// Render writes a GeoJSON view of in, optionally overlaid with the tour
// described by decisions (each Decision.Value is the next city visited,
// per dd.Decision). It is the default implementation of the visualize
// subcommand's output seam; a caller wanting an HTML map swaps this for
// their own Render-compatible function.
func Render(in *instance.Instance, decisions []dd.Decision, w io.Writer) error {
	collection := featureCollection{
		Type:     "FeatureCollection",
		Features: []any{in.Geometry()},
	}

	if len(decisions) > 0 {
		coords := make([][]float32, 0, len(decisions)+2)
		coords = append(coords, pointOf(in, 0))
		for _, d := range decisions {
			coords = append(coords, pointOf(in, d.Value))
		}
		collection.Features = append(collection.Features, lineStringFeature{
			Type: "Feature",
			Geometry: lineStringGeometry{
				Type:        "LineString",
				Coordinates: coords,
			},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(collection)
}

func pointOf(in *instance.Instance, city int) []float32 {
	d := in.Destinations[city]
	return []float32{d.Longitude, d.Latitude}
}

// RunVisualize executes the visualize subcommand: read an Instance (and
// optionally a previously solved city sequence) and Render it (§4.H,
// §6). Building an interactive HTML map from the OSRM route geometry is
// explicitly out of the core's scope; this command only guarantees the
// Render seam is exercised end to end.
func RunVisualize(ctx context.Context, cfg VisualizeConfig) error {
	f, err := os.Open(cfg.Instance)
	if err != nil {
		return errs.Input(fmt.Sprintf("opening %s", cfg.Instance), err)
	}
	defer f.Close()

	in, err := instance.ReadJSON(f)
	if err != nil {
		return err
	}

	var decisions []dd.Decision
	if cfg.Solution != "" {
		decisions, err = readTour(cfg.Solution)
		if err != nil {
			return err
		}
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("run: creating %s: %w", cfg.Output, err)
	}
	defer out.Close()

	return Render(in, decisions, out)
}

// readTour parses the "tour: 0 a b c ..." line a prior solve command
// wrote (see writeSolution), ignoring the is-exact/best-value lines
// that precede it.
func readTour(path string) ([]dd.Decision, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Input(fmt.Sprintf("opening %s", path), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		const prefix = "tour: "
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, prefix))
		if len(fields) < 2 {
			return nil, errs.Input("malformed tour line: expected at least a start and one visit", nil)
		}
		decisions := make([]dd.Decision, 0, len(fields)-1)
		for i, field := range fields[1:] {
			city, err := strconv.Atoi(field)
			if err != nil {
				return nil, errs.Input(fmt.Sprintf("malformed tour city %q", field), err)
			}
			decisions = append(decisions, dd.Decision{Variable: i, Value: city})
		}
		return decisions, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Input("reading solution file", err)
	}
	return nil, errs.Input("malformed solution file: missing tour line", nil)
}
