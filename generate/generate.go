// Package generate implements the clustered TSP instance generator
// (§4.D): centroid sampling, per-centroid Gaussian city sampling, optional
// road-network snapping, and the final pairwise cost table request.
package generate

import (
	"context"

	"github.com/geotsp/ddtsp/geo"
	"github.com/geotsp/ddtsp/instance"
	"github.com/geotsp/ddtsp/osrm"
	"github.com/geotsp/ddtsp/prng"
)

// Generate runs the full pipeline described in §4.D and returns the
// resulting Instance. client is the routing oracle adapter; tests inject
// a stub or mock (§8, S1/S4/S6) instead of a live OSRM server.
func Generate(ctx context.Context, params Params, client osrm.Client) (*instance.Instance, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	seed := prng.NewSeed()
	if params.Seed != nil {
		seed = *params.Seed
	}
	src := prng.New(seed)

	centroids := sampleCentroids(src, params.NbCentroids, params.Box)

	for i, c := range centroids {
		snapped, err := client.Nearest(ctx, c)
		if err != nil {
			return nil, err
		}
		centroids[i] = snapped
	}

	sizes := DistributeCities(params.NbCities, params.NbCentroids)

	destinations := make([]geo.Location, 0, params.NbCities)
	for i, centroid := range centroids {
		destinations = append(destinations, sampleCities(src, centroid, sizes[i], params.StdDev)...)
	}

	if params.ForceRoutable {
		for i, d := range destinations {
			snapped, err := client.Nearest(ctx, d)
			if err != nil {
				return nil, err
			}
			destinations[i] = snapped
		}
	}

	kind := osrm.Distance
	if params.Duration {
		kind = osrm.Duration
	}
	matrix, err := client.Table(ctx, destinations, kind)
	if err != nil {
		return nil, err
	}

	return instance.New(destinations, matrix)
}

// sampleCentroids draws k centroids i.i.d. uniformly within box,
// longitude and latitude sampled independently (§4.D step 1).
func sampleCentroids(src *prng.Source, k int, box geo.BoundingBox) []geo.Location {
	centroids := make([]geo.Location, k)
	for i := 0; i < k; i++ {
		lon := src.Uniform(box.MinLon, box.MaxLon)
		lat := src.Uniform(box.MinLat, box.MaxLat)
		centroids[i] = geo.Location{Longitude: float32(lon), Latitude: float32(lat)}
	}
	return centroids
}

// sampleCities draws n cities around centroid by sampling longitude and
// latitude independently from a Gaussian of the given standard deviation
// (§4.D step 4). Draws may leave the bounding box; no rejection is
// performed.
func sampleCities(src *prng.Source, centroid geo.Location, n int, stdDev float64) []geo.Location {
	cities := make([]geo.Location, n)
	for i := 0; i < n; i++ {
		lon := src.Gaussian(float64(centroid.Longitude), stdDev)
		lat := src.Gaussian(float64(centroid.Latitude), stdDev)
		cities[i] = geo.Location{Longitude: float32(lon), Latitude: float32(lat)}
	}
	return cities
}

// DistributeCities splits n cities across k centroids as evenly as
// possible: the first n mod k centroids receive ceil(n/k) cities, the
// rest receive floor(n/k) (§4.D step 3, §8 law 2). This tie-break is
// normative, not arbitrary: it must match exactly, including order.
func DistributeCities(n, k int) []int {
	sizes := make([]int, k)
	base := n / k
	remainder := n % k
	for i := 0; i < k; i++ {
		sizes[i] = base
		if i < remainder {
			sizes[i] = base + 1
		}
	}
	return sizes
}
