package pathfinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sea-route-service/internal/domain"
	"sea-route-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const maxResponseBytes = 16 << 20

// SearouteClient implements ports.Pathfinder against an HTTP searoute service.
//
// The service answers
//
//	GET {baseURL}/route?start_lat=..&start_lng=..&end_lat=..&end_lng=..&units=..
//
// with a GeoJSON Feature whose geometry is a LineString (or a Feature
// collection holding one). Any failure, including an unusable geometry, is
// reported as domain.ErrPathfinderUnavailable.
//
// The client is safe for concurrent use.
type SearouteClient struct {
	session     *http.Client
	baseURL     string
	apiKey      string
	maxAttempts int
	backoff     time.Duration
}

type SearouteOption func(*SearouteClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) SearouteOption {
	return func(s *SearouteClient) { s.session = c }
}

// WithAPIKey sends key in the Authorization header.
func WithAPIKey(key string) SearouteOption {
	return func(s *SearouteClient) { s.apiKey = key }
}

// WithRetry sets the attempt count and initial backoff for transient failures.
func WithRetry(attempts int, backoff time.Duration) SearouteOption {
	return func(s *SearouteClient) {
		if attempts > 0 {
			s.maxAttempts = attempts
		}
		if backoff > 0 {
			s.backoff = backoff
		}
	}
}

func NewSearouteClient(baseURL string, opts ...SearouteOption) (*SearouteClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("searoute client: base url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("searoute client: parse base url: %w", err)
	}

	c := &SearouteClient{
		session:     &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *SearouteClient) FindSeaRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	units domain.Units,
) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, "searoute.FindSeaRoute")(&err)

	q := url.Values{}
	q.Set("start_lat", formatDegrees(origin.Lat))
	q.Set("start_lng", formatDegrees(origin.Lon))
	q.Set("end_lat", formatDegrees(destination.Lat))
	q.Set("end_lng", formatDegrees(destination.Lon))
	if units != "" {
		q.Set("units", string(units))
	}
	endpoint := c.baseURL + "/route?" + q.Encode()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: searoute request %s -> %s: %w", domain.ErrPathfinderUnavailable, origin, destination, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: searoute read response: %w", domain.ErrPathfinderUnavailable, err)
	}

	line, err := decodeLineString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: searoute decode response: %w", domain.ErrPathfinderUnavailable, err)
	}

	out := make([]domain.Coordinates, 0, len(line))
	for _, p := range line {
		out = append(out, domain.Coordinates{Lon: p.Lon(), Lat: p.Lat()})
	}
	return out, nil
}

// decodeLineString accepts a Feature or a FeatureCollection whose first
// feature is a LineString.
func decodeLineString(body []byte) (orb.LineString, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	var geom orb.Geometry
	switch probe.Type {
	case "Feature":
		f, err := geojson.UnmarshalFeature(body)
		if err != nil {
			return nil, fmt.Errorf("parse feature: %w", err)
		}
		geom = f.Geometry
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(body)
		if err != nil {
			return nil, fmt.Errorf("parse feature collection: %w", err)
		}
		if len(fc.Features) == 0 {
			return nil, errors.New("feature collection is empty")
		}
		geom = fc.Features[0].Geometry
	default:
		return nil, fmt.Errorf("unsupported geojson type %q", probe.Type)
	}

	line, ok := geom.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("geometry must be a LineString, got %T", geom)
	}
	if len(line) < 2 {
		return nil, fmt.Errorf("line string has %d points", len(line))
	}
	return line, nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
