package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ahsan-alam-500/tonycustom/controllers"
	"github.com/ahsan-alam-500/tonycustom/database"
	"github.com/ahsan-alam-500/tonycustom/middleware"
	"github.com/ahsan-alam-500/tonycustom/repository"
	"github.com/ahsan-alam-500/tonycustom/routes"
	"github.com/ahsan-alam-500/tonycustom/services"
	"github.com/ahsan-alam-500/tonycustom/storage"
)

func main() {
	// Initialize structured logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	if err := database.Connect(); err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()
	db := database.DB

	// Media store: local disk by default, S3 when configured
	var store storage.MediaStore
	switch cfg.MediaDriver {
	case "s3":
		awsCfg, err := awscfg.LoadDefaultConfig(context.Background())
		if err != nil {
			zap.L().Fatal("Failed to load AWS config", zap.Error(err))
		}
		store = storage.NewS3Store(storage.NewS3Client(awsCfg), cfg.S3Bucket, cfg.S3Prefix)
	default:
		diskStore, err := storage.NewDiskStore(cfg.MediaRoot)
		if err != nil {
			zap.L().Fatal("Failed to initialize media storage", zap.Error(err))
		}
		store = diskStore
	}

	// --- Dependency Injection ---

	tokens := services.NewTokenService(cfg.JWTSecret)
	mailer := services.NewSMTPSender(services.EmailConfig{
		SmtpServer:  cfg.SMTPServer,
		SmtpPort:    cfg.SMTPPort,
		SenderEmail: cfg.SenderEmail,
		SenderPass:  cfg.SenderPass,
		SenderName:  cfg.SenderName,
		AdminEmail:  cfg.AdminEmail,
	}, logger)

	authService := services.NewAuthService(db, tokens, mailer, logger)
	productService := services.NewProductService(db, store, logger)
	categoryService := services.NewCategoryService(repository.NewCategoryRepository(db), logger)
	orderService := services.NewOrderService(db, logger)

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	contactRepo := repository.NewContactRepository(db)
	preOrderRepo := repository.NewPreOrderRepository(db)
	productRepo := repository.NewProductRepository(db)

	ctrls := routes.Controllers{
		Auth:        controllers.NewAuthController(authService),
		Profile:     controllers.NewProfileController(authService),
		Products:    controllers.NewProductController(productService, cfg.MediaBaseURL),
		Categories:  controllers.NewCategoryController(categoryService),
		Orders:      controllers.NewOrderController(orderService),
		AdminOrders: controllers.NewAdminOrderController(orderService),
		Payments:    controllers.NewPaymentController(paymentRepo, orderRepo, logger),
		Contacts:    controllers.NewContactController(contactRepo, mailer, logger),
		Subscribers: controllers.NewSubscriberController(contactRepo, logger),
		PreOrders:   controllers.NewPreOrderController(preOrderRepo, productRepo, logger),
	}

	// --- HTTP Server & Middleware ---

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.Register(r, tokens, ctrls)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// Serve uploaded media when using the disk driver
	if cfg.MediaDriver == "disk" {
		r.Static("/storage", cfg.MediaRoot)
	}

	// --- Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("API server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server stopped gracefully")
}
