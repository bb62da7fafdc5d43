package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"conversational-task-management/config"
	_ "conversational-task-management/docs" // Swagger docs
	chatHTTP "conversational-task-management/internal/chat/delivery/http"
	chatUC "conversational-task-management/internal/chat/usecase"
	"conversational-task-management/internal/db"
	"conversational-task-management/internal/httpserver"
	"conversational-task-management/internal/middleware"
	taskSQLite "conversational-task-management/internal/task/repository/sqlite"
	userSQLite "conversational-task-management/internal/user/repository/sqlite"
	"conversational-task-management/pkg/llmprovider"
	"conversational-task-management/pkg/log"
)

// @title       Conversational Task Management API
// @description AI-assisted task creation: natural language chat turned into validated, persisted tasks.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 0. Optional .env for local development
	_ = godotenv.Load()

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Conversational Task Management...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Error(ctx, "Failed to open database: ", err)
		return
	}
	defer func() { _ = database.Close() }()

	taskRepo := taskSQLite.New(logger, database.SQL())
	userRepo := userSQLite.New(logger, database.SQL())

	// 4. Completion gateway
	providers, err := llmprovider.InitializeProviders(&cfg.LLM, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}

	retryDelay, err := time.ParseDuration(cfg.LLM.RetryDelay)
	if err != nil {
		logger.Warnf(ctx, "Invalid llm.retry_delay %q, using 2s: %v", cfg.LLM.RetryDelay, err)
		retryDelay = 2 * time.Second
	}
	maxTotalTimeout, err := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	if err != nil {
		logger.Warnf(ctx, "Invalid llm.max_total_timeout %q, using 60s: %v", cfg.LLM.MaxTotalTimeout, err)
		maxTotalTimeout = 60 * time.Second
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotalTimeout,
	}, logger)

	// 5. Chat domain
	uc := chatUC.New(logger, manager, taskRepo, userRepo, cfg.Chat.BannedFragments)
	chatHandler := chatHTTP.New(logger, uc)

	// 6. HTTP server
	mw := middleware.New(logger, cfg.RateLimit)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHandler,
		Middleware:  mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
