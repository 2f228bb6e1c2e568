// Package config loads and validates application configuration from environment variables.
// Both binaries read their settings here: Load for the API server, LoadDashboard
// for the driver dashboard.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDriverID is the driver seeded by the migrations. The dashboard shows
// this driver's profile and files new trips under it unless DRIVER_ID is set.
const DefaultDriverID = "00000000-0000-0000-0000-000000000001"

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (the dashboard).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	return cfg, nil
}

// DashboardConfig holds the configuration of the driver dashboard.
type DashboardConfig struct {
	// Port is the TCP port the dashboard listens on. Defaults to "3000".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string

	// APIBaseURL is the root of the backend trips API, e.g. http://localhost:8080. Required.
	APIBaseURL string

	// MapboxToken is the directions API access token. Required.
	// It is also handed to the in-page map widget.
	MapboxToken string

	// MapboxBaseURL defaults to https://api.mapbox.com.
	MapboxBaseURL string

	// MapboxProfile is the routing profile. Defaults to "mapbox/driving".
	MapboxProfile string

	// GoogleMapsKey is the geocoding API key. Required.
	GoogleMapsKey string

	// GeocodeBaseURL defaults to https://maps.googleapis.com/maps/api.
	GeocodeBaseURL string

	// DriverID selects whose profile the dashboard shows. Defaults to DefaultDriverID.
	DriverID uuid.UUID

	// HTTPTimeout bounds every outbound call. Defaults to 10s.
	HTTPTimeout time.Duration
}

// LoadDashboard reads the dashboard configuration from environment variables.
func LoadDashboard() (DashboardConfig, error) {
	cfg := DashboardConfig{
		Port:           getEnv("PORT", "3000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MapboxBaseURL:  strings.TrimRight(getEnv("MAPBOX_BASE_URL", "https://api.mapbox.com"), "/"),
		MapboxProfile:  getEnv("MAPBOX_PROFILE", "mapbox/driving"),
		GeocodeBaseURL: strings.TrimRight(getEnv("GEOCODE_BASE_URL", "https://maps.googleapis.com/maps/api"), "/"),
	}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	cfg.APIBaseURL = strings.TrimRight(required("API_BASE_URL"), "/")
	cfg.MapboxToken = required("MAPBOX_ACCESS_TOKEN")
	cfg.GoogleMapsKey = required("GOOGLE_MAPS_API_KEY")

	if len(missing) > 0 {
		return DashboardConfig{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	driverID, err := uuid.Parse(getEnv("DRIVER_ID", DefaultDriverID))
	if err != nil {
		return DashboardConfig{}, fmt.Errorf("DRIVER_ID must be a UUID: %w", err)
	}
	cfg.DriverID = driverID

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return DashboardConfig{}, fmt.Errorf("HTTP_TIMEOUT must be a positive duration")
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
