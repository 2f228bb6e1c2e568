// Package geocode is the geocoding adapter: it resolves a free-text address
// to coordinates using the Google Geocoding API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/platform/httpx"
	"github.com/pkordes/eld-logbook/internal/platform/obs"
)

// ErrNoMatch is returned when the service cannot resolve an address.
var ErrNoMatch = errors.New("address not found")

// DefaultBaseURL is the Google Maps API root used when Config.BaseURL is empty.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// Config configures a Client. Key is required.
type Config struct {
	Key        string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls the geocoding service. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	key     string
	baseURL string
	logger  *slog.Logger
}

// New returns a Client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Key == "" {
		return nil, errors.New("geocoding api key is empty")
	}
	c := &Client{
		http:    cfg.HTTPClient,
		key:     cfg.Key,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  cfg.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves address to the coordinates of its best match.
// Errors: domain.ErrValidation for a blank address, ErrNoMatch when the
// service reports a non-OK status or no results, *httpx.StatusError for
// non-2xx responses.
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, c.logger, "geocode.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: address must be non-empty", domain.ErrValidation)
	}

	req, err := httpx.NewRequest(ctx, http.MethodGet, c.baseURL+"/geocode/json", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode.Client.Geocode: %w", err)
	}
	q := url.Values{}
	q.Set("address", norm)
	q.Set("key", c.key)
	req.URL.RawQuery = q.Encode()

	var decoded geocodeResponse
	if err := httpx.DoJSON(c.http, req, &decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode.Client.Geocode: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		if decoded.ErrorMessage != "" {
			return domain.Coordinates{}, fmt.Errorf("geocode.Client.Geocode: %q: %w (%s: %s)", norm, ErrNoMatch, decoded.Status, decoded.ErrorMessage)
		}
		return domain.Coordinates{}, fmt.Errorf("geocode.Client.Geocode: %q: %w (%s)", norm, ErrNoMatch, decoded.Status)
	}

	loc := decoded.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// normalize collapses runs of whitespace and trims the ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
