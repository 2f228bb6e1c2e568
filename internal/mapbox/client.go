// Package mapbox is the directions adapter: it asks the Mapbox Directions API
// for a driving route between two points and returns it as a domain.RouteLeg.
package mapbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/platform/httpx"
	"github.com/pkordes/eld-logbook/internal/platform/obs"
)

// ErrNoRoute is returned when the directions service finds no route between
// the two points.
var ErrNoRoute = errors.New("no route found")

// Defaults used when Config leaves a field empty.
const (
	DefaultBaseURL = "https://api.mapbox.com"
	DefaultProfile = "mapbox/driving"
)

// Config configures a Client. Token is required.
type Config struct {
	Token      string
	BaseURL    string
	Profile    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls the Directions API. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
	profile string
	logger  *slog.Logger
}

// New returns a Client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.New("mapbox access token is empty")
	}
	c := &Client{
		http:    cfg.HTTPClient,
		token:   cfg.Token,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: strings.Trim(cfg.Profile, "/"),
		logger:  cfg.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.profile == "" {
		c.profile = DefaultProfile
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry struct {
			Coordinates orb.LineString `json:"coordinates"`
		} `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route requests the first driving route from one point to another.
// Errors: domain.ErrValidation for out-of-range input, ErrNoRoute when the
// service returns no routes, *httpx.StatusError for non-2xx responses.
func (c *Client) Route(ctx context.Context, from, to domain.Coordinates) (_ domain.RouteLeg, err error) {
	defer obs.Time(ctx, c.logger, "mapbox.Route")(&err)

	if err := from.Validate(); err != nil {
		return domain.RouteLeg{}, fmt.Errorf("mapbox.Client.Route: origin: %w", err)
	}
	if err := to.Validate(); err != nil {
		return domain.RouteLeg{}, fmt.Errorf("mapbox.Client.Route: destination: %w", err)
	}

	endpoint := fmt.Sprintf("%s/directions/v5/%s/%s;%s", c.baseURL, c.profile, lngLat(from), lngLat(to))
	req, err := httpx.NewRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.RouteLeg{}, fmt.Errorf("mapbox.Client.Route: %w", err)
	}
	q := url.Values{}
	q.Set("geometries", "geojson")
	q.Set("access_token", c.token)
	req.URL.RawQuery = q.Encode()

	var decoded directionsResponse
	if err := httpx.DoJSON(c.http, req, &decoded); err != nil {
		return domain.RouteLeg{}, fmt.Errorf("mapbox.Client.Route: %w", err)
	}

	if decoded.Code == "NoRoute" || len(decoded.Routes) == 0 {
		return domain.RouteLeg{}, fmt.Errorf("mapbox.Client.Route: %s -> %s: %w", lngLat(from), lngLat(to), ErrNoRoute)
	}

	route := decoded.Routes[0]
	geometry := make([][2]float64, len(route.Geometry.Coordinates))
	for i, p := range route.Geometry.Coordinates {
		geometry[i] = [2]float64(p)
	}

	return domain.RouteLeg{
		From:            from,
		To:              to,
		Geometry:        geometry,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}, nil
}

// lngLat formats c as the "lng,lat" path segment the API expects.
func lngLat(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}
