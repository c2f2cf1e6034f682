package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/somnathbasteai/jeni-bot/internal/completion"
	"github.com/somnathbasteai/jeni-bot/internal/config"
	"github.com/somnathbasteai/jeni-bot/internal/database"
	_ "github.com/somnathbasteai/jeni-bot/internal/docs" // Import swagger docs
	"github.com/somnathbasteai/jeni-bot/internal/handlers"
	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
	"github.com/somnathbasteai/jeni-bot/internal/logger"
	"github.com/somnathbasteai/jeni-bot/internal/middleware"
	"github.com/somnathbasteai/jeni-bot/internal/services"
	"github.com/somnathbasteai/jeni-bot/internal/validator"
)

// @title           Jeni API
// @version         1.0
// @description     Jeni is a personal life OS: chat commands and forms record finances, plans and health, and a conversational assistant answers from the aggregated life state.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	completer, err := completion.New(cfg.Completion)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	loc := cfg.Location()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	recordService := services.NewRecordService(db, cfg.Timezone)
	entryService := services.NewEntryService(recordService, auditService)
	aggregator := lifecontext.NewAggregator(recordService, loc, nil)
	chatService := services.NewChatService(
		recordService,
		entryService,
		interpreter.NewDefaultRouter(loc, nil),
		aggregator,
		completer,
	)

	tokens := middleware.NewTokens(cfg.JWTSecret, cfg.JWTExpirationDur)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService, tokens)
	chatHandler := handlers.NewChatHandler(chatService)
	contextHandler := handlers.NewContextHandler(aggregator)
	recordHandler := handlers.NewRecordHandler(entryService, handlers.Clock{Loc: loc})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "model": completer.Model()})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))

	protected.GET("/me", authHandler.Me)

	protected.POST("/chat", chatHandler.Chat)
	protected.GET("/chat/sessions/:id", chatHandler.GetSession)

	protected.GET("/context", contextHandler.GetContext)
	protected.GET("/context/prompt", contextHandler.GetPrompt)

	// Record forms
	protected.PUT("/profile", recordHandler.UpsertProfile)
	protected.POST("/income", recordHandler.CreateIncome)
	protected.POST("/emis", recordHandler.CreateEMI)
	protected.POST("/subscriptions", recordHandler.CreateSubscription)
	protected.POST("/expenses", recordHandler.CreateExpense)
	protected.POST("/projects", recordHandler.CreateProject)
	protected.POST("/tasks", recordHandler.CreateTask)
	protected.POST("/goals", recordHandler.CreateGoal)
	protected.POST("/schedule", recordHandler.CreateScheduleItem)
	protected.PUT("/health", recordHandler.UpsertHealth)

	log.Infow("Starting Jeni server",
		"port", cfg.Port,
		"db_driver", dbManager.Driver(),
		"completion_provider", cfg.Completion.Provider,
		"completion_model", completer.Model(),
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
