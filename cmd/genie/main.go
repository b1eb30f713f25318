package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	appDocument "github.com/geniehq/genie-search/pkg/app/document"
	"github.com/geniehq/genie-search/pkg/cache"
	"github.com/geniehq/genie-search/pkg/config"
	handlers "github.com/geniehq/genie-search/pkg/handlers/http"
	"github.com/geniehq/genie-search/pkg/infra/database"
	"github.com/geniehq/genie-search/pkg/infra/embedding/cached"
	"github.com/geniehq/genie-search/pkg/infra/embedding/openai"
	"github.com/geniehq/genie-search/pkg/infra/httpx"
	infraLogger "github.com/geniehq/genie-search/pkg/infra/logger"
	_ "github.com/geniehq/genie-search/pkg/infra/migrations"
	"github.com/geniehq/genie-search/pkg/infra/repository"
	"github.com/geniehq/genie-search/pkg/middleware"
	"github.com/geniehq/genie-search/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	// Target store (vector side), owns the schema
	targetDB, err := database.NewDB(logger, &database.Config{
		Host:     cfg.TargetDB.Host,
		Port:     cfg.TargetDB.Port,
		User:     cfg.TargetDB.User,
		Password: cfg.TargetDB.Password,
		DBName:   cfg.TargetDB.DBName,
		SSLMode:  cfg.TargetDB.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize target database: %v", err)
	}
	defer targetDB.Close()

	// Source store (operational side), read-only
	sourceDB, err := database.NewSourceDB(logger, &database.SourceConfig{
		Host:     cfg.SourceDB.Host,
		Port:     cfg.SourceDB.Port,
		User:     cfg.SourceDB.User,
		Password: cfg.SourceDB.Password,
		DBName:   cfg.SourceDB.DBName,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize source database: %v", err)
	}
	defer sourceDB.Close()

	// embedding provider
	breaker := httpx.NewCircuitBreaker("openai-embeddings", cfg.Embedding.Timeout, 5)
	embedder := openai.NewEmbeddingService(&fasthttp.Client{}, breaker, logger, openai.Config{
		URL:       cfg.Embedding.URL,
		Model:     cfg.Embedding.Model,
		APIKey:    cfg.Embedding.APIKey,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
	queryEmbedder := embedder
	if cfg.Redis.Enabled {
		cacheClient, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize cache: %v", err)
		}
		defer cacheClient.Close()
		queryEmbedder = cached.NewCreator(embedder, cacheClient, logger)
	}

	// repository
	documentRepository := repository.NewDocumentRepository(targetDB.DB)
	sourceRecordRepository := repository.NewSourceRecordRepository(sourceDB.DB)
	progressTracker := repository.NewSyncProgressRepository(targetDB.DB)

	// service
	syncer := appDocument.NewSyncer(
		sourceRecordRepository,
		documentRepository,
		progressTracker,
		embedder,
		logger,
		cfg.Embedding.Dimension,
		cfg.Embedding.MaxConcurrency,
	)
	searcher := appDocument.NewSearcher(documentRepository, queryEmbedder, logger)
	finder := appDocument.NewFinder(documentRepository)

	// middleware
	middlewareTransport := middleware.Transport{
		AuthMiddleware:    middleware.NewAuthMiddleware(logger, cfg.Server.AdminToken),
		MetricsMiddleware: middleware.NewMetricsMiddleware(logger),
	}

	// Handler Transport
	handlerTransport := handlers.HandlerTransport{
		ListDocumentsHandler:   handlers.NewListDocumentsHandler(logger, finder),
		SyncDocumentsHandler:   handlers.NewSyncDocumentsHandler(logger, syncer),
		SearchDocumentsHandler: handlers.NewSearchDocumentsHandler(logger, searcher),
		GetVersionHandler:      handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
