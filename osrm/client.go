// Package osrm wraps an external OSRM-compatible routing service (§4.C),
// the routing oracle consumed — but not implemented — by this toolkit.
// It exposes exactly the two operations the generator and driver need:
// snapping a coordinate to the routed network, and requesting a full
// pairwise cost table.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/geotsp/ddtsp/errs"
	"github.com/geotsp/ddtsp/geo"
)

// DefaultHost is the OSRM host used when the caller does not configure
// one explicitly.
const DefaultHost = "https://router.project-osrm.org"

// Annotation selects which cost metric a table request returns: travel
// distance in metres, or travel duration in seconds (§4.C).
type Annotation string

const (
	// Distance requests metres.
	Distance Annotation = "distance"
	// Duration requests seconds.
	Duration Annotation = "duration"
)

// Client is the routing oracle adapter's public surface.
type Client interface {
	// Nearest returns the nearest routable point to loc.
	Nearest(ctx context.Context, loc geo.Location) (geo.Location, error)
	// Table returns the n×n pairwise cost matrix for locs, in the metric
	// selected by kind.
	Table(ctx context.Context, locs []geo.Location, kind Annotation) ([][]float32, error)
}

// ClientOption configures a Client returned by NewClient.
type ClientOption func(*client)

// WithCache enables an LRU response cache of the given size, keyed by
// request URI, mirroring the OSRM client response cache pattern used
// elsewhere in the ecosystem for exactly this purpose.
func WithCache(size int) ClientOption {
	return func(c *client) {
		cache, err := lru.New(size)
		if err != nil {
			// Only returns an error for size <= 0, which is a caller bug.
			panic("osrm: invalid cache size: " + err.Error())
		}
		c.cache = cache
	}
}

// WithHTTPClient overrides the *http.Client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *client) { c.httpClient = hc }
}

// NewClient builds a Client talking to host (an empty string selects
// DefaultHost).
func NewClient(host string, opts ...ClientOption) Client {
	if host == "" {
		host = DefaultHost
	}
	c := &client{
		host:       host,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type client struct {
	host       string
	httpClient *http.Client
	cache      *lru.Cache
}

func (c *client) get(ctx context.Context, uri string) ([]byte, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(uri); ok {
			if b, ok := v.([]byte); ok {
				return b, nil
			}
		}
	}

	base, err := url.Parse(c.host)
	if err != nil {
		return nil, errs.Oracle("invalid host", err)
	}
	ref, err := url.Parse(uri)
	if err != nil {
		return nil, errs.Oracle("invalid request path", err)
	}
	full := base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full.String(), nil)
	if err != nil {
		return nil, errs.Oracle("building request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Oracle("calling routing service", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Oracle("reading response body", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Oracle(
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, body), nil,
		)
	}

	if c.cache != nil {
		c.cache.Add(uri, body)
	}
	return body, nil
}

type nearestResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Waypoints []struct {
		Location [2]float64 `json:"location"`
	} `json:"waypoints"`
}

func (c *client) Nearest(ctx context.Context, loc geo.Location) (geo.Location, error) {
	uri := fmt.Sprintf("/nearest/v1/driving/%s?number=1", pointParam(loc))

	body, err := c.get(ctx, uri)
	if err != nil {
		return geo.Location{}, err
	}

	var resp nearestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return geo.Location{}, errs.Oracle("decoding nearest response", err)
	}
	if resp.Code != "Ok" {
		return geo.Location{}, errs.Oracle(
			fmt.Sprintf("nearest: expected \"Ok\", got %q (%q)", resp.Code, resp.Message), nil,
		)
	}
	if len(resp.Waypoints) == 0 {
		return geo.Location{}, errs.Oracle("nearest: empty waypoints", nil)
	}

	snapped := resp.Waypoints[0].Location
	return geo.Location{Longitude: float32(snapped[0]), Latitude: float32(snapped[1])}, nil
}

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

func (c *client) Table(ctx context.Context, locs []geo.Location, kind Annotation) ([][]float32, error) {
	if len(locs) == 0 {
		return nil, errs.Oracle("table: empty point set", nil)
	}

	coords := make([]string, len(locs))
	for i, l := range locs {
		coords[i] = pointParam(l)
	}
	uri := fmt.Sprintf("/table/v1/driving/%s?annotations=%s", strings.Join(coords, ";"), kind)

	body, err := c.get(ctx, uri)
	if err != nil {
		return nil, err
	}

	var resp tableResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errs.Oracle("decoding table response", err)
	}
	if resp.Code != "Ok" {
		return nil, errs.Oracle(
			fmt.Sprintf("table: expected \"Ok\", got %q (%q)", resp.Code, resp.Message), nil,
		)
	}

	var raw [][]*float64
	switch kind {
	case Duration:
		raw = resp.Durations
	default:
		raw = resp.Distances
	}

	n := len(locs)
	if len(raw) != n {
		return nil, errs.Oracle("table: matrix shape mismatch", nil)
	}
	matrix := make([][]float32, n)
	for i := 0; i < n; i++ {
		if len(raw[i]) != n {
			return nil, errs.Oracle("table: matrix shape mismatch", nil)
		}
		matrix[i] = make([]float32, n)
		for j, v := range raw[i] {
			if v == nil {
				return nil, errs.Oracle(
					fmt.Sprintf("table: null cell at [%d][%d]", i, j), nil,
				)
			}
			matrix[i][j] = float32(*v)
		}
	}
	return matrix, nil
}

func pointParam(l geo.Location) string {
	return strconv.FormatFloat(float64(l.Longitude), 'f', 6, 64) + "," +
		strconv.FormatFloat(float64(l.Latitude), 'f', 6, 64)
}
