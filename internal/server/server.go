package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/submitin/api/internal/config"
	"github.com/submitin/api/internal/handler"
	"github.com/submitin/api/internal/middleware"
	"github.com/submitin/api/internal/notify"
	"github.com/submitin/api/internal/ratelimit"
	"github.com/submitin/api/internal/repository"
	"github.com/submitin/api/internal/service"
	"github.com/submitin/api/internal/storage"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	redis    *storage.RedisClient
	postgres *storage.Postgres
	limiter  ratelimit.Limiter

	authHandler         *handler.AuthHandler
	formHandler         *handler.FormHandler
	fieldHandler        *handler.FieldHandler
	settingsHandler     *handler.SettingsHandler
	responseHandler     *handler.ResponseHandler
	subscriptionHandler *handler.SubscriptionHandler

	authService *service.AuthService

	httpServer *http.Server
}

func New(cfg *config.Config, postgres *storage.Postgres, redis *storage.RedisClient, dispatcher *notify.Dispatcher) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	users := repository.NewUserRepository(postgres)
	forms := repository.NewFormRepository(postgres)
	fields := repository.NewFieldRepository(postgres)
	settings := repository.NewSettingsRepository(postgres)
	responses := repository.NewResponseRepository(postgres)
	subscriptions := repository.NewSubscriptionRepository(postgres)

	limiter := ratelimit.NewLimiter(cfg.RateLimitBackend, redis)

	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.JWTExpiryHours)
	formService := service.NewFormService(forms, fields, responses, redis)
	fieldService := service.NewFieldService(forms, fields)
	settingsService := service.NewSettingsService(forms, users, settings)
	submissionService := service.NewSubmissionService(
		forms,
		responses,
		limiter,
		dispatcher,
		notify.NewEmailClient(cfg.ResendAPIKey, cfg.EmailFrom),
		notify.NewWebhookClient(),
		cfg.AppURL,
	)
	subscriptionService := service.NewSubscriptionService(users, subscriptions)

	s := &Server{
		router:              router,
		config:              cfg,
		redis:               redis,
		postgres:            postgres,
		limiter:             limiter,
		authHandler:         handler.NewAuthHandler(authService),
		formHandler:         handler.NewFormHandler(formService, authService),
		fieldHandler:        handler.NewFieldHandler(fieldService),
		settingsHandler:     handler.NewSettingsHandler(settingsService),
		responseHandler:     handler.NewResponseHandler(submissionService, formService),
		subscriptionHandler: handler.NewSubscriptionHandler(subscriptionService, cfg.BillingToken),
		authService:         authService,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.CORS(s.config.AllowedOrigin))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")

	// Public surface: form rendering and submissions. The submission
	// endpoint carries its own per-form throttle inside the service.
	api.GET("/public/forms/:slug", s.formHandler.PublicBySlug)
	api.POST("/forms/:id/responses", s.responseHandler.Submit)

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(s.limiter, "auth", 10, time.Minute))
	{
		auth.POST("/register", s.authHandler.Register)
		auth.POST("/login", s.authHandler.Login)
		auth.GET("/me", middleware.RequireAuth(s.authService), s.authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(s.authService))
	{
		protected.POST("/forms", s.formHandler.Create)
		protected.GET("/forms", s.formHandler.List)
		protected.GET("/forms/:id", s.formHandler.Get)
		protected.PUT("/forms/:id", s.formHandler.Update)
		protected.DELETE("/forms/:id", s.formHandler.Delete)

		protected.POST("/forms/:id/fields", s.fieldHandler.Create)
		protected.PUT("/forms/:id/fields", s.fieldHandler.Reorder)
		protected.PUT("/forms/:id/fields/:fieldId", s.fieldHandler.Update)
		protected.DELETE("/forms/:id/fields/:fieldId", s.fieldHandler.Delete)

		protected.PUT("/forms/:id/settings", s.settingsHandler.Update)
		protected.GET("/forms/:id/responses", s.responseHandler.List)

		protected.GET("/user/subscription", s.subscriptionHandler.Get)
	}

	api.POST("/billing/events", s.subscriptionHandler.ApplyBillingEvent)
}

func (s *Server) healthCheck(c *gin.Context) {
	redisHealthy := true
	if err := s.redis.Ping(c.Request.Context()); err != nil {
		redisHealthy = false
		log.Printf("Redis health check failed: %v", err)
	}

	dbHealthy := true
	if err := s.postgres.Ping(c.Request.Context()); err != nil {
		dbHealthy = false
		log.Printf("Database health check failed: %v", err)
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !redisHealthy || !dbHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"service":   "submitin-api",
		"timestamp": time.Now().Unix(),
		"checks": gin.H{
			"redis":    redisHealthy,
			"database": dbHealthy,
		},
	})
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", addr)
	log.Printf("Environment: %s", s.config.Environment)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
