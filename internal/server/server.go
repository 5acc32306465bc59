package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"chatdesk/internal/ai"
	"chatdesk/internal/config"
	"chatdesk/internal/handler"
	authHandler "chatdesk/internal/handler/auth"
	"chatdesk/internal/pkg/cache"
	"chatdesk/internal/pkg/jwt"
	"chatdesk/internal/pkg/mongodb"
	"chatdesk/internal/repository"
	authRepo "chatdesk/internal/repository/auth"
	"chatdesk/internal/server/middleware"
	"chatdesk/internal/service"
)

// Server is the HTTP server with its backing connections.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New connects the store, cache and completion client, wires the services
// and builds the route table.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// The store is the one hard dependency: every operation persists
	// through it.
	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	// Redis is optional; without it single-conversation lookups just hit
	// the store.
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	if cfg.AI.APIKey == "" {
		log.Warn().Msg("AI API key not configured, completion calls will fail")
	}
	aiClient, err := ai.NewClient(context.Background(), &cfg.AI)
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("completion client ready")

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	srv.setupRoutes(aiClient)

	return srv, nil
}

func (s *Server) setupRoutes(aiClient *ai.Client) {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(&s.cfg.CORS))

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := s.mongo.Database()
	convRepo := repository.NewConversationRepo(db)
	userRepo := authRepo.NewUserRepo(db)

	var convCache service.ConversationCache
	if s.redis != nil {
		convCache = cache.NewConversationCache(s.redis)
	}

	chatSvc := service.NewChatService(convRepo, aiClient, convCache)
	convSvc := service.NewConversationService(convRepo, convCache)

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	tokenExpiry := s.cfg.Auth.TokenExpiry
	if tokenExpiry == 0 {
		tokenExpiry = 24 * time.Hour
	}

	authSvc := service.NewAuthService(userRepo, jwtSecret, tokenExpiry)

	chatHdl := handler.NewChatHandler(chatSvc)
	convHdl := handler.NewConversationHandler(convSvc)
	healthHdl := handler.NewHealthHandler(s.mongo)
	authHdl := authHandler.NewHandler(authSvc)

	requireAuth := middleware.Auth(jwt.NewJWT(jwtSecret, tokenExpiry))

	api := s.engine.Group("/api")
	{
		api.GET("/health", healthHdl.Health)

		api.POST("/auth/register", authHdl.Register)
		api.POST("/auth/login", authHdl.Login)
		api.POST("/auth/logout", requireAuth, authHdl.Logout)
		api.GET("/auth/profile", requireAuth, authHdl.GetProfile)
		api.PUT("/auth/profile", requireAuth, authHdl.UpdateProfile)

		api.POST("/chat/message", chatHdl.Message)
		api.POST("/chat/regenerate", chatHdl.Regenerate)

		api.GET("/conversations/:userId", convHdl.List)
		api.GET("/conversations/single/:conversationId", convHdl.GetSingle)
		api.DELETE("/conversations/bulk", convHdl.BulkDelete)
		api.POST("/conversations/save", convHdl.Save)
		api.POST("/conversations/update-title", convHdl.UpdateTitle)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. Connections are closed on the way out.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
