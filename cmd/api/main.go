package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sparynx/internal/config"
	"sparynx/internal/database"
	"sparynx/internal/handlers"
	"sparynx/internal/logger"
	"sparynx/internal/mailer"
	"sparynx/internal/middleware"
	"sparynx/internal/scheduler"
	"sparynx/internal/services"
	"sparynx/internal/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "sparynx/internal/docs" // Import swagger docs
)

// @title           Sparynx Budget API
// @version         1.0
// @description     Budget tracking backend: accounts, budgets, and email deadline reminders.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Construct the notification provider once; it is injected into the
	// budget service and the deadline scanner, and closed at shutdown.
	mail, err := newMailer(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}
	defer func() {
		if closer, ok := mail.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Warnf("mailer close error: %v", err)
			}
		}
	}()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db, mail, appConfig.MailTimeout)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)

	// Register custom binding validations
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{appConfig.CORSAllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)

	// Protected routes: any authenticated caller may act on any budget.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.POST("/create-budget", budgetHandler.CreateBudget)
	protected.GET("/budgets", budgetHandler.GetBudgets)
	protected.GET("/budget/:id", budgetHandler.GetBudget)
	protected.PUT("/edit-budget/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/delete-budget/:id", budgetHandler.DeleteBudget)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the deadline scanner; it stops when ctx is cancelled.
	scanner := scheduler.NewScanner(db, mail, appConfig.ScanInterval, appConfig.MailTimeout)
	scanner.Start(ctx)
	log.Infof("Deadline scanner started with interval %s", appConfig.ScanInterval)

	srv := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Sparynx backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newMailer builds the configured notification provider.
func newMailer(cfg *config.Config) (mailer.Mailer, error) {
	switch cfg.MailProvider {
	case "resend":
		return mailer.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom, &http.Client{Timeout: cfg.MailTimeout}), nil
	case "smtp":
		port, err := strconv.Atoi(cfg.SMTPPort)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
		}
		return mailer.NewSMTPMailer(cfg.SMTPHost, port, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}
}
