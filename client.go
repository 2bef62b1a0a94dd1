// Package cavist is the embedded SDK for the faceted catalog concierge.
// It wires the same repositories and services the API server uses, without
// the HTTP transport.
package cavist

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cavist-cloud/cavist/internal/db"
	dbRedis "github.com/cavist-cloud/cavist/internal/db/redis"
	dbValkey "github.com/cavist-cloud/cavist/internal/db/valkey"
	catalogrepo "github.com/cavist-cloud/cavist/internal/repository/catalog"
	eventsrepo "github.com/cavist-cloud/cavist/internal/repository/events"
	packrepo "github.com/cavist-cloud/cavist/internal/repository/pack"
	openaiChat "github.com/cavist-cloud/cavist/internal/transport/openai"
	analyticsuc "github.com/cavist-cloud/cavist/internal/usecase/analytics"
	intentuc "github.com/cavist-cloud/cavist/internal/usecase/intent"
	rankuc "github.com/cavist-cloud/cavist/internal/usecase/rank"
	summaryuc "github.com/cavist-cloud/cavist/internal/usecase/summary"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCatalogTTL       = 5 * time.Minute
	defaultEventRetention   = 92 * 24 * time.Hour
)

// Client is the cavist SDK entry point.
type Client struct {
	store        db.Store
	rankSvc      *rankuc.Service
	intentRes    *intentuc.Resolver
	summarySvc   *summaryuc.Service
	analyticsSvc *analyticsuc.Service
}

// New creates a cavist Client. A store and chat provider are optional; a
// file-only client ranks catalogs but has no analytics or chat features.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		catalogDir: "catalogs",
		packDir:    "packs",
		keyPrefix:  "cavist:",
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		s, err := createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("cavist: database not ready: %w", err)
		}
		store = s
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("cavist: create valkey store: %w", err)
		}
		return s, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("cavist: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("cavist: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	catalogRepo := catalogrepo.New(cfg.catalogDir)
	if store != nil {
		catalogRepo = catalogRepo.WithCache(store, cfg.keyPrefix, defaultCatalogTTL)
	}
	packRepo := packrepo.New(cfg.packDir)

	rankSvc := rankuc.New(catalogRepo, packRepo)

	var analyticsEvents analyticsuc.EventsReader
	if store != nil {
		eventStore := eventsrepo.New(store, cfg.keyPrefix, defaultEventRetention)
		rankSvc = rankSvc.WithEvents(eventStore)
		analyticsEvents = eventStore
	}

	var chat *openaiChat.Chat
	if cfg.llmAPIKey != "" {
		chat = openaiChat.NewChat(&openaiChat.Config{
			APIKey:   cfg.llmAPIKey,
			BaseURL:  cfg.llmBaseURL,
			Model:    cfg.llmModel,
			Provider: cfg.llmProvider,
			Logger:   cfg.logger,
		})
	}

	// Pass nil interface (not typed nil pointer!) when chat is not configured.
	var intentChat intentuc.Chat
	var summaryChat summaryuc.Chat
	if chat != nil {
		intentChat = chat
		summaryChat = chat
	}

	return &Client{
		store:        store,
		rankSvc:      rankSvc,
		intentRes:    intentuc.NewResolver(intentChat),
		summarySvc:   summaryuc.New(summaryChat),
		analyticsSvc: analyticsuc.New(analyticsEvents),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity. File-only clients always succeed.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
