// Package main is the entry point for the driver dashboard.
// It wires the trips API client, the directions and geocoding adapters and
// the page server together, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pkordes/eld-logbook/internal/config"
	"github.com/pkordes/eld-logbook/internal/geocode"
	"github.com/pkordes/eld-logbook/internal/mapbox"
	"github.com/pkordes/eld-logbook/internal/middleware"
	"github.com/pkordes/eld-logbook/internal/pipeline"
	"github.com/pkordes/eld-logbook/internal/tripsapi"
	"github.com/pkordes/eld-logbook/internal/web"
)

// formBodyLimit caps the add-trip form submission.
const formBodyLimit = 64 << 10

func main() {
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.LoadDashboard()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Outbound clients -------------------------------------------------
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	trips, err := tripsapi.New(cfg.APIBaseURL, httpClient, logger)
	if err != nil {
		slog.Error("trips api client", "error", err)
		os.Exit(1)
	}
	router, err := mapbox.New(mapbox.Config{
		Token:      cfg.MapboxToken,
		BaseURL:    cfg.MapboxBaseURL,
		Profile:    cfg.MapboxProfile,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		slog.Error("mapbox client", "error", err)
		os.Exit(1)
	}
	geocoder, err := geocode.New(geocode.Config{
		Key:        cfg.GoogleMapsKey,
		BaseURL:    cfg.GeocodeBaseURL,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		slog.Error("geocode client", "error", err)
		os.Exit(1)
	}

	pages, err := web.NewServer(web.Config{
		Trips:       trips,
		Geocoder:    geocoder,
		Pipeline:    pipeline.New(trips, router, logger),
		DriverID:    cfg.DriverID,
		MapboxToken: cfg.MapboxToken,
		Logger:      logger,
	})
	if err != nil {
		slog.Error("page templates", "error", err)
		os.Exit(1)
	}

	// --- Router -----------------------------------------------------------
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMaxBodySizeHandler(formBodyLimit))
	pages.Register(r)

	// --- HTTP Server ------------------------------------------------------
	// The write timeout covers two directions calls plus the time-log call
	// on the log sheet page.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 3*cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("dashboard starting", "addr", srv.Addr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down dashboard")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("dashboard stopped")
}
