package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"game-service/internal/api/routes"
	"game-service/internal/config"
	"game-service/internal/database"
	"game-service/internal/game"
	"game-service/internal/services"
	"game-service/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting game server")

	db, err := database.NewMySQLConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}

	redisClient, err := database.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	store := storage.NewStorage(db)
	if err := store.Seed(context.Background()); err != nil {
		slog.Error("Failed to seed world data", "error", err)
		os.Exit(1)
	}

	redisService := services.NewRedisService(redisClient)

	hub := game.NewHub(store, redisService, cfg.Game.PingInterval, cfg.Game.SendBuffer)

	// Hourly sweep of leaderboard entries from previous days
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				if err := store.ResetDailyLeaderboard(cleanupCtx); err != nil {
					slog.Warn("Failed to clean up leaderboard entries", "error", err)
				}
			}
		}
	}()

	router := routes.NewRouter(hub, store, redisService, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Stop()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
