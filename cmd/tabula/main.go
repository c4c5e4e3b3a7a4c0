package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tabulahq/tabula/internal/config"
	logpkg "github.com/tabulahq/tabula/internal/logger"
	"github.com/tabulahq/tabula/internal/metrics"
	"github.com/tabulahq/tabula/internal/repository/sqlite"
	chiTransport "github.com/tabulahq/tabula/internal/transport/chi"
	openaiTransport "github.com/tabulahq/tabula/internal/transport/openai"
	assistantuc "github.com/tabulahq/tabula/internal/usecase/assistant"
	dispatchuc "github.com/tabulahq/tabula/internal/usecase/dispatch"
	searchuc "github.com/tabulahq/tabula/internal/usecase/search"
	"github.com/tabulahq/tabula/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tabula assistant service",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_path", cfg.Database.Path),
		zap.String("model", cfg.Model.Name),
	)

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	metrics.RegisterAssistantMetrics()

	// Composition root.
	projects := sqlite.NewProjectRepo(db)
	tasks := sqlite.NewTaskRepo(db)
	notebooks := sqlite.NewNotebookRepo(db)
	pages := sqlite.NewPageRepo(db)

	model := openaiTransport.NewClient(&openaiTransport.Config{
		APIKey:      cfg.Model.APIKey,
		BaseURL:     cfg.Model.BaseURL,
		Model:       cfg.Model.Name,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
		Logger:      logger,
	})

	searchSvc := searchuc.New(projects, tasks, pages, logger).
		WithDefaults(cfg.Search.DefaultLimit, cfg.Search.SnippetLength)
	dispatchSvc := dispatchuc.New(projects, tasks, notebooks, pages, logger)
	assistantSvc := assistantuc.New(searchSvc, dispatchSvc, model, logger)

	server := chiTransport.NewServer(assistantSvc, searchSvc, dispatchSvc, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Handler(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
