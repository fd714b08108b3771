// Package run is the command-line driver (§4.H): three subcommands,
// generate/solve/visualize, each filled from flags by go-flagsfiller
// and dispatched to the corresponding package. It writes results to
// stdout or files; reading os.Args and choosing the process exit code
// are left to cmd/ddtsp.
package run

import (
	"flag"

	"github.com/itzg/go-flagsfiller"

	"github.com/geotsp/ddtsp/osrm"
)

// GenerateConfig mirrors the generate subcommand's flags (§6).
type GenerateConfig struct {
	Seed          uint64  `default:"0" usage:"random seed (0 derives one from the clock)"`
	NbCities      int     `default:"10" usage:"number of destinations to generate"`
	NbCentroids   int     `default:"1" usage:"number of geographic clusters"`
	StdDev        float64 `default:"0.1" usage:"Gaussian standard deviation around each centroid, in degrees"`
	MinLon        float64 `default:"2.5" usage:"bounding box minimum longitude"`
	MaxLon        float64 `default:"6.4" usage:"bounding box maximum longitude"`
	MinLat        float64 `default:"49.5" usage:"bounding box minimum latitude"`
	MaxLat        float64 `default:"51.5" usage:"bounding box maximum latitude"`
	ForceRoutable bool    `default:"false" usage:"snap every destination to the road network, not just centroids"`
	Duration      bool    `default:"false" usage:"request a duration matrix instead of a distance matrix"`
	Output        string  `default:"instance.json" usage:"path to write the Instance JSON"`
	URLOSRM       string  `default:"" usage:"OSRM host; empty uses the public default"`
}

// SolveConfig mirrors the solve subcommand's flags (§6).
type SolveConfig struct {
	Instance   string `default:"instance.json" usage:"path to the Instance JSON to solve"`
	Width      int    `default:"1000" usage:"decision-diagram layer width"`
	TimeoutSec int    `default:"30" usage:"solve time budget in seconds"`
	Workers    int    `default:"0" usage:"worker goroutines (0 uses GOMAXPROCS)"`
	Output     string `default:"" usage:"path to write the solution; empty writes to stdout"`
}

// VisualizeConfig mirrors the visualize subcommand's flags (§6). The
// subcommand itself is out of the core's scope; this toolkit exposes
// only the narrow Render seam (see render.go) in its place.
type VisualizeConfig struct {
	Instance string `default:"instance.json" usage:"path to the Instance JSON"`
	Solution string `default:"" usage:"path to a solution file; empty renders destinations only"`
	Output   string `default:"map.geojson" usage:"path to write the rendered output"`
	URLOSRM  string `default:"" usage:"OSRM host; accepted but not contacted by the GeoJSON renderer"`
}

// fill parses args into cfg using struct-tag defaults and usage strings.
func fill[T any](name string, args []string) (T, error) {
	var cfg T
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	filler := flagsfiller.New()
	if err := filler.Fill(fs, &cfg); err != nil {
		return cfg, err
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// oracleClient builds the OSRM adapter for the generate subcommand,
// applying its cache size and host conventions. Visualize does not call
// it.
func oracleClient(host string) osrm.Client {
	if host == "" {
		host = osrm.DefaultHost
	}
	return osrm.NewClient(host, osrm.WithCache(1024))
}
