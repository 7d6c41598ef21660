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

	"github.com/gin-gonic/gin"

	"github.com/SGP-2025/attendance-service/internal/config"
	"github.com/SGP-2025/attendance-service/internal/events"
	"github.com/SGP-2025/attendance-service/internal/handlers"
	"github.com/SGP-2025/attendance-service/internal/notify"
	"github.com/SGP-2025/attendance-service/internal/repositories/file"
	"github.com/SGP-2025/attendance-service/internal/services"
	"github.com/SGP-2025/attendance-service/internal/sessions"
	"github.com/SGP-2025/attendance-service/internal/utils"
	"github.com/SGP-2025/attendance-service/internal/validator"
	"github.com/SGP-2025/attendance-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize file-backed repositories
	repoManager := file.NewRepositoryManager(file.RepositoryConfig{
		DataDir: cfg.DataDir,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize session store (redis when configured, process memory otherwise)
	var sessionStore sessions.Store = sessions.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer redisClient.Close()
		sessionStore = sessions.NewRedisStore(redisClient)
	}

	// Initialize validator
	validator := validator.New()

	// Initialize event bus
	bus := events.NewBus(slogLogger)

	// Initialize services
	serviceManager := services.NewDefaultServiceManager(repoManager.GetRepository(), bus, slogLogger, validator)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Start the absence notification mailer
	mailerCtx, stopMailer := context.WithCancel(context.Background())
	defer stopMailer()
	mailer := notify.NewMailer(notify.SMTPConfig(cfg.SMTP), serviceManager.Settings(), bus, slogLogger)
	if err := mailer.Start(mailerCtx); err != nil {
		log.Fatalf("Failed to start mailer: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, sessionStore, cfg.SessionTTL, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "data_dir", cfg.DataDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	stopMailer()
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}
	if err := repoManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown repositories: %v", err)
	}

	logger.Info("Server exited")
}
