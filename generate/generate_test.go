package generate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/geotsp/ddtsp/generate"
	"github.com/geotsp/ddtsp/geo"
	"github.com/geotsp/ddtsp/osrm"
	"github.com/geotsp/ddtsp/osrm/osrmmock"
	"github.com/geotsp/ddtsp/prng"
)

// identityClient is a stub oracle whose Nearest is the identity and whose
// Table returns a fixed symmetric matrix, used for scenarios S1/S4/S6.
type identityClient struct {
	distance, duration float32
}

func (c identityClient) Nearest(_ context.Context, loc geo.Location) (geo.Location, error) {
	return loc, nil
}

func (c identityClient) Table(_ context.Context, locs []geo.Location, kind osrm.Annotation) ([][]float32, error) {
	n := len(locs)
	v := c.distance
	if kind == osrm.Duration {
		v = c.duration
	}
	m := make([][]float32, n)
	for i := range m {
		m[i] = make([]float32, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = v
			}
		}
	}
	return m, nil
}

func TestDistributeCitiesBalancesRemainderFirst(t *testing.T) {
	require.Equal(t, []int{4, 3, 3}, generate.DistributeCities(10, 3)) // S2
	require.Equal(t, []int{3, 3, 3}, generate.DistributeCities(9, 3))  // S3
	require.Equal(t, []int{4, 4, 3}, generate.DistributeCities(11, 3)) // S3
}

func TestDistributeCitiesSumsToN(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for k := 1; k <= n; k++ {
			sizes := generate.DistributeCities(n, k)
			total := 0
			for _, s := range sizes {
				total += s
			}
			require.Equal(t, n, total, "n=%d k=%d", n, k)
		}
	}
}

func TestGenerateTinyExact(t *testing.T) { // S1
	seed := prng.Seed{Lo: 42}
	params := generate.DefaultParams()
	params.NbCities = 5
	params.NbCentroids = 1
	params.Seed = &seed

	in, err := generate.Generate(context.Background(), params, identityClient{distance: 111000})
	require.NoError(t, err)
	require.Equal(t, 5, in.NbCities())
	for i := range in.Distances {
		require.Equal(t, float32(0), in.Distances[i][i])
	}
}

func TestGenerateForceRoutableIdentitySnapIsNoOp(t *testing.T) { // S4
	seed := prng.Seed{Lo: 7}
	params := generate.DefaultParams()
	params.NbCities = 6
	params.NbCentroids = 2
	params.ForceRoutable = false
	params.Seed = &seed

	unsnapped, err := generate.Generate(context.Background(), params, identityClient{distance: 1})
	require.NoError(t, err)

	params.ForceRoutable = true
	seed2 := prng.Seed{Lo: 7}
	params.Seed = &seed2
	snapped, err := generate.Generate(context.Background(), params, identityClient{distance: 1})
	require.NoError(t, err)

	require.Equal(t, unsnapped.Destinations, snapped.Destinations)
}

func TestGenerateMatrixModeSwitch(t *testing.T) { // S6
	seed := prng.Seed{Lo: 99}
	params := generate.DefaultParams()
	params.NbCities = 4
	params.NbCentroids = 1
	params.Duration = false
	params.Seed = &seed

	withDistance, err := generate.Generate(context.Background(), params, identityClient{distance: 1, duration: 2})
	require.NoError(t, err)

	seed2 := prng.Seed{Lo: 99}
	params.Duration = true
	params.Seed = &seed2
	withDuration, err := generate.Generate(context.Background(), params, identityClient{distance: 1, duration: 2})
	require.NoError(t, err)

	require.Equal(t, float32(1), withDistance.Distances[0][1])
	require.Equal(t, float32(2), withDuration.Distances[0][1])
}

func TestGenerateRejectsOversizedInstance(t *testing.T) {
	params := generate.DefaultParams()
	params.NbCities = 65
	_, err := generate.Generate(context.Background(), params, identityClient{})
	require.Error(t, err)
}

func TestGenerateRejectsZeroCentroids(t *testing.T) {
	params := generate.DefaultParams()
	params.NbCentroids = 0
	_, err := generate.Generate(context.Background(), params, identityClient{})
	require.Error(t, err)
}

func TestGenerateUsesMockOracle(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := osrmmock.NewMockClient(ctrl)

	params := generate.DefaultParams()
	params.NbCities = 3
	params.NbCentroids = 1
	seed := prng.Seed{Lo: 1}
	params.Seed = &seed

	client.EXPECT().Nearest(gomock.Any(), gomock.Any()).Return(geo.Location{Longitude: 4, Latitude: 50}, nil)
	client.EXPECT().Table(gomock.Any(), gomock.Any(), osrm.Distance).DoAndReturn(
		func(_ context.Context, locs []geo.Location, _ osrm.Annotation) ([][]float32, error) {
			n := len(locs)
			m := make([][]float32, n)
			for i := range m {
				m[i] = make([]float32, n)
			}
			return m, nil
		},
	)

	in, err := generate.Generate(context.Background(), params, client)
	require.NoError(t, err)
	require.Equal(t, 3, in.NbCities())
}
