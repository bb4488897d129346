package routes

import (
	"time"

	"game-service/internal/api/handlers"
	"game-service/internal/api/middleware"
	"game-service/internal/game"
	"game-service/internal/services"
	"game-service/internal/storage"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine          *gin.Engine
	wsHandler       *handlers.WSHandler
	userHandler     *handlers.UserHandler
	statsHandler    *handlers.StatsHandler
	worldHandler    *handlers.WorldHandler
	presenceHandler *handlers.PresenceHandler
	rateLimitMW     *middleware.RateLimitMiddleware
	authMW          *middleware.AuthMiddleware
}

func NewRouter(
	hub *game.Hub,
	store *storage.Storage,
	redisService *services.RedisService,
	jwtSecret string,
	jwtExpiry time.Duration,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	userService := services.NewUserService(store, jwtSecret, jwtExpiry)

	return &Router{
		engine:          engine,
		wsHandler:       handlers.NewWSHandler(hub),
		userHandler:     handlers.NewUserHandler(userService, store),
		statsHandler:    handlers.NewStatsHandler(store, redisService),
		worldHandler:    handlers.NewWorldHandler(store, redisService),
		presenceHandler: handlers.NewPresenceHandler(redisService),
		rateLimitMW:     middleware.NewRateLimitMiddleware(redisService),
		authMW:          middleware.NewAuthMiddleware(jwtSecret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	// Game clients authenticate inside the protocol, not at upgrade time
	api.GET("/ws", r.wsHandler.HandleWebSocket)

	// Public routes
	public := api.Group("/")
	public.Use(r.rateLimitMW.RateLimitIP(50, time.Minute))
	{
		public.POST("/users", r.userHandler.Register)
		public.POST("/auth/login", r.userHandler.Login)
		public.GET("/users/:id", r.userHandler.GetUser)
		public.GET("/users/:id/stats", r.statsHandler.GetStats)
		public.GET("/users/:id/catches", r.statsHandler.ListCatches)
		public.GET("/islands", r.worldHandler.ListIslands)
		public.GET("/fish-species", r.worldHandler.ListFishSpecies)
		public.GET("/fish-species/:id", r.worldHandler.GetFishSpecies)
		public.GET("/leaderboard/:category", r.worldHandler.GetLeaderboard)
		public.GET("/players/online", r.presenceHandler.ListOnlinePlayers)
		public.GET("/users/:id/online", r.presenceHandler.GetPlayerOnline)
	}

	// Mutating stats routes require a token
	auth := api.Group("/")
	auth.Use(r.authMW.RequireAuth())
	auth.Use(r.rateLimitMW.RateLimit(100, time.Minute))
	{
		auth.POST("/users/:id/stats", r.statsHandler.CreateStats)
		auth.PATCH("/users/:id/stats", r.statsHandler.UpdateStats)
		auth.POST("/users/:id/catches", r.statsHandler.RecordCatch)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
