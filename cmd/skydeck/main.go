package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/skydeck-app/skydeck/internal/cache"
	"github.com/skydeck-app/skydeck/internal/config"
	"github.com/skydeck-app/skydeck/internal/engine"
	"github.com/skydeck-app/skydeck/internal/janitor"
	"github.com/skydeck-app/skydeck/internal/provider"
	"github.com/skydeck-app/skydeck/internal/server"
	"github.com/skydeck-app/skydeck/internal/stats"
	"github.com/skydeck-app/skydeck/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	st := openStore(cfg)

	client := provider.NewHTTPClient(cfg.ProviderTimeout)

	var airports []provider.AirportSource
	if cfg.AviationStackKey != "" {
		airports = append(airports, provider.NewAviationStack(client, cfg.AviationStackKey))
	}

	var flights []provider.FlightSource
	if cfg.OpenSkyClientID != "" && cfg.OpenSkyClientSecret != "" {
		flights = append(flights, provider.NewOpenSky(client, cfg.OpenSkyClientID, cfg.OpenSkyClientSecret))
	}
	if cfg.RapidAPIKey != "" {
		flights = append(flights, provider.NewAeroDataBox(client, cfg.RapidAPIKey))
	}

	var fares []provider.FareSource
	if cfg.TravelpayoutsToken != "" {
		fares = append(fares, provider.NewTravelpayouts(client, cfg.TravelpayoutsToken, cfg.TravelpayoutsMarker))
	}

	slog.Info("providers configured",
		"airports", len(airports),
		"flights", len(flights),
		"fares", len(fares))

	c := cache.New(cfg.CacheMaxEntries)
	agg := stats.New(cfg.StatsMaxBuckets)

	eng := engine.New(engine.Options{
		Cache:           c,
		Stats:           agg,
		Airports:        airports,
		Flights:         flights,
		Fares:           fares,
		AirportTTL:      cfg.AirportCacheTTL,
		FlightTTL:       cfg.FlightCacheTTL,
		FareTTL:         cfg.FareCacheTTL,
		ProviderTimeout: cfg.ProviderTimeout,
	})

	jan := janitor.New(c, 5*time.Minute)
	go jan.Start(context.Background())

	srv := server.New(cfg, eng, agg, st)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down")

	jan.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

// openStore connects to Postgres when DATABASE_URL is set; otherwise the
// process runs with persistence disabled.
func openStore(cfg *config.Config) store.Store {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, persistence disabled")
		return store.Noop{}
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	pg := store.NewPostgres(db)
	if err := pg.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	return pg
}
