package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"volunteer-events-api/internal/handler"
	"volunteer-events-api/internal/metrics"
	"volunteer-events-api/internal/middleware"
	"volunteer-events-api/internal/realtime"
	"volunteer-events-api/internal/repository"
	"volunteer-events-api/internal/service"
)

// Config carries everything the router needs to wire the application
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	TokenTTL       time.Duration
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	ImageStore     service.ImageStore
	Hub            *realtime.Hub
	Publisher      realtime.Publisher
}

// Setup builds the gin engine with all routes and middleware registered
func Setup(cfg Config) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.Recovery(cfg.Logger))
	engine.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		engine.Use(middleware.Metrics(cfg.Metrics))
	}

	publisher := cfg.Publisher
	if publisher == nil {
		publisher = realtime.NewNopPublisher()
	}

	// Repositories
	tx := repository.NewTransactor(cfg.DB)
	userRepo := repository.NewUserRepository(cfg.DB)
	eventRepo := repository.NewEventRepository(cfg.DB)
	participationRepo := repository.NewParticipationRepository(cfg.DB)
	favoriteRepo := repository.NewFavoriteRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	eventService := service.NewEventService(tx, eventRepo, participationRepo, favoriteRepo, commentRepo, userRepo, cfg.ImageStore, publisher, cfg.Metrics, cfg.Logger)
	participationService := service.NewParticipationService(tx, participationRepo, eventRepo, publisher, cfg.Metrics, cfg.Logger)
	rosterService := service.NewRosterService(eventRepo, participationRepo, userRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, eventRepo, publisher)
	commentService := service.NewCommentService(commentRepo, eventRepo, publisher)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Logger)
	eventHandler := handler.NewEventHandler(eventService, cfg.Logger)
	participationHandler := handler.NewParticipationHandler(participationService, cfg.Logger)
	rosterHandler := handler.NewRosterHandler(rosterService, cfg.Logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, cfg.Logger)
	commentHandler := handler.NewCommentHandler(commentService, cfg.Logger)

	// Operational endpoints
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/ready", func(c *gin.Context) {
		sqlDB, err := cfg.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api/v1"
	}
	api := engine.Group(basePath)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	public := api.Group("")
	public.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		public.GET("/events", eventHandler.ListEvents)
		public.GET("/events/:eventId", eventHandler.GetEvent)
		public.GET("/events/:eventId/comments", commentHandler.GetComments)
	}

	if cfg.Hub != nil {
		api.GET("/ws", cfg.Hub.HandleWS)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	{
		authed.GET("/users/me", authHandler.GetMe)
		authed.PUT("/users/me/role", authHandler.SwitchRole)
		authed.GET("/users/me/events", eventHandler.GetMyEvents)
		authed.GET("/users/me/signups", participationHandler.GetMySignups)
		authed.GET("/users/me/favorites", favoriteHandler.GetMyFavorites)

		authed.POST("/events", eventHandler.CreateEvent)
		authed.PUT("/events/:eventId", eventHandler.UpdateEvent)
		authed.DELETE("/events/:eventId", eventHandler.DeleteEvent)
		authed.POST("/uploads/presign", eventHandler.PresignImageUpload)

		authed.POST("/events/:eventId/participations", participationHandler.SignUp)
		authed.DELETE("/events/:eventId/participations/:participationId", participationHandler.Withdraw)
		authed.PATCH("/participations/:participationId/status", participationHandler.SetStatus)

		authed.GET("/events/:eventId/roster", rosterHandler.GetRoster)

		authed.POST("/events/:eventId/favorite", favoriteHandler.Toggle)

		authed.POST("/events/:eventId/comments", commentHandler.AddComment)
		authed.DELETE("/comments/:commentId", commentHandler.DeleteComment)
	}

	return engine
}
