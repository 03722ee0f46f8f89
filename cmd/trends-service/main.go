package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/vantage/internal/aggregator"
	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/internal/config"
	"github.com/XavierBriggs/vantage/internal/handlers"
	"github.com/XavierBriggs/vantage/internal/hub"
	"github.com/XavierBriggs/vantage/internal/providers/espn"
	"github.com/XavierBriggs/vantage/internal/publisher"
	"github.com/XavierBriggs/vantage/internal/registry"
	"github.com/XavierBriggs/vantage/internal/scheduler"
	"github.com/XavierBriggs/vantage/pkg/models"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting Trends Service...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional Redis: snapshot mirror + refresh streams. The service is
	// fully functional without it.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}

		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable, continuing without mirror: %v", err)
			redisClient = nil
		} else {
			log.Println("Connected to Redis")
		}
	}

	reg := buildRegistry(cfg.Sports)
	espnClient := espn.New()
	facade := aggregator.New(reg, espnClient, cache.NewSnapshotWriter(redisClient))
	streams := publisher.NewStreamPublisher(redisClient)

	broadcastHub := hub.New()
	go broadcastHub.Run(ctx)

	manager := scheduler.NewManager()
	defer manager.Close()
	startRefreshLoops(ctx, manager, facade, reg, broadcastHub, streams)

	handler := handlers.New(facade, reg, broadcastHub, ctx)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      buildRouter(handler, cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Trends Service listening on %s", cfg.Server.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)

	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
			srv.Close()
		}
	}

	log.Println("Trends Service stopped")
}

// buildRegistry registers every sport, optionally restricted to the
// configured subset
func buildRegistry(sports []string) *registry.Registry {
	full := registry.New()
	if len(sports) == 0 {
		return full
	}

	reg := registry.NewEmpty()
	for _, key := range sports {
		module, err := full.GetModule(key)
		if err != nil {
			log.Printf("Ignoring unknown sport %q (known: %v)", key, full.AllSportKeys())
			continue
		}
		reg.Register(module)
	}
	return reg
}

// startRefreshLoops subscribes one background refresh loop per sport.
// Each successful cycle is pushed to WebSocket clients and onto the
// Redis stream.
func startRefreshLoops(
	ctx context.Context,
	manager *scheduler.Manager,
	facade *aggregator.Facade,
	reg *registry.Registry,
	broadcastHub *hub.Hub,
	streams *publisher.StreamPublisher,
) {
	for _, module := range reg.EnabledSports() {
		sportKey := module.GetSportKey()
		polling := module.GetPollingConfig()

		opts := scheduler.Options{
			Name:    "trends/" + sportKey,
			Polling: polling,
			Liveness: func() scheduler.Liveness {
				gctx, gcancel := context.WithTimeout(ctx, 15*time.Second)
				defer gcancel()

				games, err := facade.GamesForSport(gctx, sportKey)
				if err != nil {
					return scheduler.LivenessUpcoming
				}
				return scheduler.SlateLiveness(games, polling.PreGameRampup, time.Now())
			},
		}

		fetch := func(fctx context.Context) (*aggregator.TrendsResult, error) {
			return facade.FetchTrends(fctx, sportKey, "", aggregator.RefreshForce)
		}

		onUpdate := func(result *aggregator.TrendsResult) {
			broadcastHub.Broadcast(models.RefreshUpdate{
				Resource: "trends",
				SportKey: sportKey,
				Payload:  result,
			})

			pctx, pcancel := context.WithTimeout(ctx, 5*time.Second)
			defer pcancel()
			if err := streams.PublishRefresh(pctx, "trends", sportKey, result); err != nil {
				log.Printf("[%s] stream publish failed: %v", sportKey, err)
			}
		}

		if _, err := scheduler.Subscribe(ctx, manager, opts, fetch, onUpdate); err != nil {
			// First load failed; the loop keeps retrying on its own
			log.Printf("[%s] initial aggregation failed: %v", sportKey, err)
		}
	}
}

func buildRouter(handler *handlers.Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HandleHealth)
	r.Get("/ws", handler.HandleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/trends", handler.HandleGetTrends)
		r.Get("/predictions", handler.HandleGetPredictions)
		r.Get("/injuries", handler.HandleGetInjuries)
		r.Get("/news", handler.HandleGetNews)
		r.Get("/sports/enabled", handler.HandleGetEnabledSports)
	})

	return r
}
