package instance_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/geotsp/ddtsp/geo"
	"github.com/geotsp/ddtsp/instance"
	"github.com/stretchr/testify/require"
)

func square(n int, v float32) [][]float32 {
	m := make([][]float32, n)
	for i := range m {
		m[i] = make([]float32, n)
		for j := range m[i] {
			m[i][j] = v
		}
	}
	return m
}

func TestNewRejectsOutOfRangeSize(t *testing.T) {
	_, err := instance.New(nil, nil)
	require.Error(t, err)

	dests := make([]geo.Location, instance.MaxCities+1)
	_, err = instance.New(dests, square(len(dests), 1))
	require.Error(t, err)
}

func TestNewRejectsRaggedOrNegativeMatrix(t *testing.T) {
	dests := []geo.Location{{}, {}}
	_, err := instance.New(dests, [][]float32{{0, 1}})
	require.Error(t, err)

	bad := square(2, -1)
	_, err = instance.New(dests, bad)
	require.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	dests := []geo.Location{{Longitude: 4.35, Latitude: 50.85}, {Longitude: 4.4, Latitude: 50.9}}
	in, err := instance.New(dests, square(2, 123.456))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, in.WriteJSON(&buf))

	out, err := instance.ReadJSON(&buf)
	require.NoError(t, err)
	require.Equal(t, in.Destinations, out.Destinations)
	require.Equal(t, in.Distances, out.Distances)
}

func TestReadJSONRejectsMalformed(t *testing.T) {
	_, err := instance.ReadJSON(strings.NewReader("not json"))
	require.Error(t, err)
}

func TestWriteTextFormat(t *testing.T) {
	dests := []geo.Location{{Longitude: 4.35, Latitude: 50.85}, {Longitude: 4.4, Latitude: 50.9}}
	in, err := instance.New(dests, square(2, 1.5))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, in.WriteText(&buf, "generated by test"))

	text := buf.String()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.True(t, strings.HasPrefix(lines[0], "c generated by test"))
	require.True(t, strings.HasPrefix(lines[1], "c "))
	require.True(t, strings.HasPrefix(lines[2], "c "))
	// Last two lines are the matrix rows.
	require.Contains(t, lines[3], "1.50000")
}

func TestGeometry(t *testing.T) {
	dests := []geo.Location{{Longitude: 4.35, Latitude: 50.85}}
	in, err := instance.New(dests, square(1, 0))
	require.NoError(t, err)

	g := in.Geometry()
	require.Equal(t, "MultiPoint", g.Geometry.Type)
	require.Len(t, g.Geometry.Coordinates, 1)
	require.Equal(t, float32(4.35), g.Geometry.Coordinates[0][0])
}
