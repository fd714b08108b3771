package generate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/geotsp/ddtsp/errs"
	"github.com/geotsp/ddtsp/geo"
	"github.com/geotsp/ddtsp/instance"
	"github.com/geotsp/ddtsp/prng"
)

var validate = validator.New()

// Params are the generator's inputs (§4.D), filled from CLI flags by the
// driver (4.H) or set directly by a caller embedding the package.
type Params struct {
	NbCities      int     `validate:"required,min=1,max=64"`
	NbCentroids   int     `validate:"required,min=1"`
	StdDev        float64 `validate:"gt=0"`
	Box           geo.BoundingBox
	ForceRoutable bool
	Duration      bool
	Seed          *prng.Seed
}

// DefaultParams returns the generator's defaults, matching the CLI
// defaults described in §6.
func DefaultParams() Params {
	return Params{
		NbCities:    10,
		NbCentroids: 1,
		StdDev:      0.1,
		Box:         geo.Belgium,
	}
}

// Validate checks the parameter-error class of invariants (§7): nb_cities
// out of bitset range, nb_centroids == 0, non-finite bounding box, and
// whatever struct-tag constraints validator.v10 expresses directly. Cross
// field/domain checks the tag language can't express are layered on top.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return errs.Parameter("invalid generation parameters", err)
	}
	if p.NbCities > instance.MaxCities {
		return errs.Parameter(
			fmt.Sprintf("nb_cities %d exceeds the %d-city bitset cap", p.NbCities, instance.MaxCities), nil,
		)
	}
	if p.NbCentroids > p.NbCities {
		return errs.Parameter(
			fmt.Sprintf("nb_centroids %d exceeds nb_cities %d", p.NbCentroids, p.NbCities), nil,
		)
	}
	if !p.Box.Valid() {
		return errs.Parameter("bounding box is non-finite or inverted", nil)
	}
	return nil
}
