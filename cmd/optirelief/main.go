package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/navya-devv/optirelief/internal/api"
	"github.com/navya-devv/optirelief/internal/config"
	"github.com/navya-devv/optirelief/internal/dispatch"
	"github.com/navya-devv/optirelief/internal/graph"
	"github.com/navya-devv/optirelief/internal/logging"
	"github.com/navya-devv/optirelief/internal/matching"
	"github.com/navya-devv/optirelief/internal/models"
	"github.com/navya-devv/optirelief/internal/ranking"
	"github.com/navya-devv/optirelief/internal/repository"
	"github.com/navya-devv/optirelief/internal/routing"
	"github.com/navya-devv/optirelief/internal/textscan"
	"github.com/navya-devv/optirelief/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := loadGraph(ctx, db)
	if err != nil {
		logging.Fatalf("Failed to load location graph: %v", err)
	}
	slog.Info("location graph loaded", "locations", store.Len())

	// Message persistence runs behind the analyze response.
	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.BufferSize,
		func(ctx context.Context, msg *models.Message) error {
			if err := db.AddMessage(ctx, msg); err != nil {
				slog.Error("error persisting message", "id", msg.ID, "error", err)
				return err
			}
			slog.Debug("message persisted", "id", msg.ID, "level", msg.UrgencyLevel)
			return nil
		})
	pool.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.RateRPS))

	handler := api.NewHandler(api.Deps{
		Areas:      db,
		Supplies:   db,
		Volunteers: db,
		Regions:    db,
		Messages:   db,
		Graph:      store,
		Planner:    routing.NewPlanner(store, cfg.Engine.MinutesPerUnit),
		Matrix:     dispatch.NewMatrix(store, cfg.Engine.MinutesPerUnit, cfg.Engine.DispatchTimeBudget),
		Ranker:     ranking.NewRanker(cfg.Engine.SeverityWeight, cfg.Engine.PopulationWeight, cfg.Engine.DelayWeight),
		Scanner:    textscan.NewScanner(nil),
		Matcher:    matching.NewMatcher(cfg.Engine.MatcherNodeBudget),
		Persist:    pool,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Drain queued message writes before releasing the database.
	pool.Stop()
	cancel()

	slog.Info("shutdown complete")
}

// loadGraph builds the in-memory location graph from the stored map.
func loadGraph(ctx context.Context, repo repository.MapRepository) (*graph.Store, error) {
	store := graph.NewStore()

	locations, err := repo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	for _, loc := range locations {
		if err := store.AddLocation(loc); err != nil {
			return nil, err
		}
	}

	edges, err := repo.ListEdges(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := store.AddEdge(e.From, e.To, e.Distance, e.Directed); err != nil {
			return nil, err
		}
	}

	return store, nil
}
