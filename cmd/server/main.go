package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sea-route-service/internal/adapters/cache"
	"sea-route-service/internal/adapters/pathfinder"
	"sea-route-service/internal/api"
	"sea-route-service/internal/config"
	"sea-route-service/internal/platform/db"
	"sea-route-service/internal/platform/obs"
	"sea-route-service/internal/ports"
	"sea-route-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires the pathfinder adapter and its cache tiers behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logCloser, err := obs.SetupLogging(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	upstream, err := newPathfinder(cfg)
	if err != nil {
		log.Fatal(err)
	}

	tiers, cleanup, err := openCacheTiers(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	cached, err := pathfinder.NewCachedPathfinder(upstream, cfg.PathfinderTimeout, tiers...)
	if err != nil {
		log.Fatal(err)
	}

	planner, err := services.NewRoutePlanner(cached, services.PlannerConfig{
		DefaultUnits:      cfg.DefaultUnits,
		HeadingTolerance:  cfg.HeadingTolerance,
		MaxDeviationKm:    cfg.MaxDeviationKm,
		WaypointSpacing:   cfg.WaypointSpacing,
		PathfinderTimeout: cfg.PathfinderTimeout,
	})
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(planner)

	// Write timeout leaves room for a cold-cache compare, which may wait on
	// the pathfinder twice.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2*cfg.PathfinderTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s pathfinder=%s units=%s tiers=%d",
		cfg.Port, cfg.PathfinderMode, cfg.DefaultUnits, len(tiers))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func newPathfinder(cfg *config.Config) (ports.Pathfinder, error) {
	if cfg.PathfinderMode == config.PathfinderModeStraight {
		log.Println("PATHFINDER_MODE=straight: routes will not follow sea lanes")
		return pathfinder.StraightLinePathfinder{}, nil
	}

	return pathfinder.NewSearouteClient(
		cfg.PathfinderURL,
		pathfinder.WithHTTPClient(&http.Client{Timeout: cfg.PathfinderTimeout}),
		pathfinder.WithAPIKey(config.Get("PATHFINDER_API_KEY", "")),
	)
}

// openCacheTiers returns the configured route cache tiers, fastest first.
// Redis and SQL are optional; the in-process LRU is always present.
func openCacheTiers(ctx context.Context, cfg *config.Config) ([]ports.RouteCache, func(), error) {
	var (
		tiers   = []ports.RouteCache{cache.NewLRURouteCache(cfg.RouteCacheSize, cfg.RouteCacheTTL)}
		rdb     *redis.Client
		sqlConn *sql.DB
	)

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		if sqlConn != nil {
			_ = sqlConn.Close()
		}
	}

	if cfg.RedisURL != "" {
		client, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		rdb = client
		tiers = append(tiers, cache.NewRedisRouteCache(rdb, cfg.RouteCacheTTL))
	}

	if cfg.DatabaseURL != "" {
		dialect, err := cache.DialectForDriver(cfg.DBDriver)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sqlConn = conn
		tiers = append(tiers, cache.NewSQLRouteCache(sqlConn, dialect, cfg.RouteCacheTTL))
	}

	return tiers, cleanup, nil
}
