package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cavist-cloud/cavist/internal/config"
	"github.com/cavist-cloud/cavist/internal/db"
	dbRedis "github.com/cavist-cloud/cavist/internal/db/redis"
	dbValkey "github.com/cavist-cloud/cavist/internal/db/valkey"
	logpkg "github.com/cavist-cloud/cavist/internal/logger"
	"github.com/cavist-cloud/cavist/internal/metrics"
	catalogrepo "github.com/cavist-cloud/cavist/internal/repository/catalog"
	eventsrepo "github.com/cavist-cloud/cavist/internal/repository/events"
	packrepo "github.com/cavist-cloud/cavist/internal/repository/pack"
	chiTransport "github.com/cavist-cloud/cavist/internal/transport/chi"
	openaiChat "github.com/cavist-cloud/cavist/internal/transport/openai"
	analyticsuc "github.com/cavist-cloud/cavist/internal/usecase/analytics"
	healthuc "github.com/cavist-cloud/cavist/internal/usecase/health"
	intentuc "github.com/cavist-cloud/cavist/internal/usecase/intent"
	rankuc "github.com/cavist-cloud/cavist/internal/usecase/rank"
	summaryuc "github.com/cavist-cloud/cavist/internal/usecase/summary"
	"github.com/cavist-cloud/cavist/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cavist API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_dir", cfg.Data.CatalogDir),
		zap.String("pack_dir", cfg.Data.PackDir),
	)

	// The store is optional: without addrs the service runs file-only
	// (no catalog cache, no analytics counters).
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		switch cfg.Database.Driver {
		case "valkey":
			store, err = dbValkey.NewStore(dbValkey.Config{
				Addrs:    cfg.Database.Addrs,
				Password: cfg.Database.Password,
			})
		case "redis":
			store, err = dbRedis.NewStore(dbRedis.Config{
				Addrs:    cfg.Database.Addrs,
				Password: cfg.Database.Password,
			})
		default:
			logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
		}
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Strings("addrs", cfg.Database.Addrs),
		)
	}

	// Register ranking metrics explicitly (no init())
	metrics.RegisterRankMetrics()

	// Create repositories
	catalogRepo := catalogrepo.New(cfg.Data.CatalogDir)
	if store != nil {
		catalogRepo = catalogRepo.WithCache(
			store, cfg.Storage.KeyPrefix,
			time.Duration(cfg.Storage.CatalogTTLSec)*time.Second,
		)
	}
	packRepo := packrepo.New(cfg.Data.PackDir)

	// Optional chat provider
	var chat *openaiChat.Chat
	if cfg.LLM.APIKey != "" {
		chat = openaiChat.NewChat(&openaiChat.Config{
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
			Provider: cfg.LLM.Provider,
			Logger:   logger,
		})
		logger.Info("Chat provider configured",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model),
		)
	}

	// Create use case services.
	// Pass nil interface (not typed nil pointer!) for optional collaborators.
	rankSvc := rankuc.New(catalogRepo, packRepo)
	var eventStore *eventsrepo.Store
	if store != nil {
		eventStore = eventsrepo.New(
			store, cfg.Storage.KeyPrefix,
			time.Duration(cfg.Storage.EventRetentionDay)*24*time.Hour,
		)
		rankSvc = rankSvc.WithEvents(eventStore)
	}

	var analyticsEvents analyticsuc.EventsReader
	if eventStore != nil {
		analyticsEvents = eventStore
	}
	analyticsSvc := analyticsuc.New(analyticsEvents)

	var intentChat intentuc.Chat
	var summaryChat summaryuc.Chat
	var chatChecker healthuc.ChatChecker
	if chat != nil {
		intentChat = chat
		summaryChat = chat
		chatChecker = chat
	}
	intentResolver := intentuc.NewResolver(intentChat)
	summarySvc := summaryuc.New(summaryChat)

	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	healthSvc := healthuc.New(dbPinger, chatChecker)

	// Create chi server
	server := chiTransport.NewServer(rankSvc, intentResolver, summarySvc, analyticsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
