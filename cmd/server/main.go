package main

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/config"
	"github.com/yukikurage/collab-projects-api/internal/constants"
	"github.com/yukikurage/collab-projects-api/internal/database"
	"github.com/yukikurage/collab-projects-api/internal/handlers"
	"github.com/yukikurage/collab-projects-api/internal/logger"
	"github.com/yukikurage/collab-projects-api/internal/middleware"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	utils.SetJWTSecret(cfg.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	r := gin.New()
	r.Use(
		logger.RequestID(),
		logger.GinLogger(),
		logger.GinRecovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)),
	)

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session store")
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set, project drafting is disabled")
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	collabRepo := repository.NewCollaborationRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokens := services.TokenConfig{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Collaborative Projects API is running",
		})
	})

	handlers.RegisterRoutes(r, handlers.Services{
		Auth:           services.NewAuthService(userRepo, catalogRepo, tokens),
		Users:          services.NewUserService(userRepo, projectRepo, catalogRepo),
		Catalog:        services.NewCatalogService(catalogRepo),
		Projects:       services.NewProjectService(projectRepo, catalogRepo, aiService),
		Collaborations: services.NewCollaborationService(collabRepo, projectRepo),
		Comments:       services.NewCommentService(commentRepo, projectRepo),
	})

	// Start server
	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

// newSessionStore returns a Redis-backed store, or a cookie store when
// SESSION_STORE=cookie
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	options := sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	if cfg.SessionStore == "cookie" {
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(options)
		return store, nil
	}

	store, err := redisStore.NewStore(
		10,                              // Redis pool size
		"tcp",                           // network type
		cfg.RedisHost+":"+cfg.RedisPort, // Redis address from config
		"",                              // username (empty for default user)
		"",                              // password (empty = no password)
		[]byte(cfg.SessionSecret),       // authentication key
	)
	if err != nil {
		return nil, err
	}
	store.Options(options)
	return store, nil
}
