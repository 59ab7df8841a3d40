package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authHandler "github.com/marcus-ai-bot/maltidsplaneraren/internal/api/handlers/auth"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/api/handlers/health"
	imagesHandler "github.com/marcus-ai-bot/maltidsplaneraren/internal/api/handlers/images"
	planningHandler "github.com/marcus-ai-bot/maltidsplaneraren/internal/api/handlers/planning"
	recipesHandler "github.com/marcus-ai-bot/maltidsplaneraren/internal/api/handlers/recipes"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/api/middleware"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/ai"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/ai/cache"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/extract"
	imagesvc "github.com/marcus-ai-bot/maltidsplaneraren/internal/core/image"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/planner"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/shopping"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/db"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/mail"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/storage"
)

const (
	// AI extraction can take a while on slow models.
	timeoutDuration = 120 * time.Second
	// Request body limit, sized for 4 photos (10MB).
	maxBodySize = 10 << 20
	// Upload size limit per image.
	maxImageSize = 5 << 20
)

// SetupRouter wires services, repositories and routes.
func SetupRouter(cfg *config.Config, database *gorm.DB, completionCache *cache.Cache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
		}
	})

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	recipeRepo := db.NewRecipeRepository(database)
	planRepo := db.NewPlanRepository(database)

	aiService := ai.NewService(cfg, completionCache)
	objectStore := storage.NewSupabaseStore(&cfg.Storage)
	mailSender := mail.NewResendSender(&cfg.Mail)
	fetcher := extract.NewPageFetcher(&cfg.Extract)
	imageProcessor := imagesvc.NewService(maxImageSize)

	var pipelineStore extract.ObjectStore
	if objectStore != nil {
		pipelineStore = objectStore
	}
	pipeline := extract.NewPipeline(aiService, recipeRepo, pipelineStore, fetcher, cfg.Extract.MaxImages)

	suggester := planner.NewSuggester(aiService, planRepo, recipeRepo)
	shoppingSvc := shopping.NewService(planRepo)
	reminderSvc := planner.NewReminderService(planRepo)

	healthH := health.NewHandler(cfg, database)
	recipesH := recipesHandler.NewHandler(recipeRepo, pipeline)
	planningH := planningHandler.NewHandler(planRepo, suggester, shoppingSvc, reminderSvc)
	authH := authHandler.NewHandler(cfg, mailSender)

	var uploadStore imagesHandler.ObjectStore
	if objectStore != nil {
		uploadStore = objectStore
	}
	imagesH := imagesHandler.NewHandler(recipeRepo, uploadStore, imageProcessor)

	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)

	api := router.Group("/api/v1")
	{
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipesH.HandleList)
			recipeGroup.GET("/:id", recipesH.HandleGet)
			recipeGroup.POST("/extract", recipesH.HandleExtractURL)
			recipeGroup.POST("/extract-image", recipesH.HandleExtractImages)
			recipeGroup.POST("/:id/rating", recipesH.HandleRate)
		}

		api.PUT("/dayplans", planningH.HandleUpsertDayPlan)
		api.GET("/dayplans", planningH.HandleListDayPlans)

		suggestionGroup := api.Group("/suggestions")
		{
			suggestionGroup.POST("/generate", planningH.HandleGenerateSuggestions)
			suggestionGroup.POST("/:id/accept", planningH.HandleAcceptSuggestion)
		}

		api.POST("/shopping/generate", planningH.HandleGenerateShopping)
		api.POST("/reminders/meat", planningH.HandleMeatReminder)

		api.POST("/auth/magic-link", authH.HandleMagicLink)
		api.POST("/images/upload", imagesH.HandleUpload)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("storage_configured", objectStore != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
