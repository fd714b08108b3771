package run

import (
	"context"
	"fmt"
	"os"

	"github.com/geotsp/ddtsp/generate"
	"github.com/geotsp/ddtsp/geo"
	"github.com/geotsp/ddtsp/prng"
)

// RunGenerate executes the generate subcommand: sample a clustered
// instance per cfg and write it to cfg.Output (§4.D, §4.H).
func RunGenerate(ctx context.Context, cfg GenerateConfig) error {
	params := generate.Params{
		NbCities:      cfg.NbCities,
		NbCentroids:   cfg.NbCentroids,
		StdDev:        cfg.StdDev,
		ForceRoutable: cfg.ForceRoutable,
		Duration:      cfg.Duration,
		Box: geo.BoundingBox{
			MinLon: cfg.MinLon,
			MaxLon: cfg.MaxLon,
			MinLat: cfg.MinLat,
			MaxLat: cfg.MaxLat,
		},
	}
	if cfg.Seed != 0 {
		seed := prng.SeedFromUint64(cfg.Seed)
		params.Seed = &seed
	}

	client := oracleClient(cfg.URLOSRM)

	in, err := generate.Generate(ctx, params, client)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("run: creating %s: %w", cfg.Output, err)
	}
	defer f.Close()

	if err := in.WriteJSON(f); err != nil {
		return fmt.Errorf("run: writing %s: %w", cfg.Output, err)
	}
	return nil
}
