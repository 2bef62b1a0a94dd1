// Package catalog loads catalog snapshots from YAML flat files, optionally
// fronted by a store-backed cache.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cavist-cloud/cavist/internal/db"
	"github.com/cavist-cloud/cavist/internal/domain"
	domcat "github.com/cavist-cloud/cavist/internal/domain/catalog"
	"github.com/cavist-cloud/cavist/internal/logger"
)

// catalogIDPattern rejects identifiers that could escape the catalog directory.
var catalogIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Repo loads catalogs by identifier from <dir>/<id>.yaml.
type Repo struct {
	dir       string
	cache     db.KVStore
	keyPrefix string
	ttl       time.Duration
}

// New creates a file-backed catalog repository.
func New(dir string) *Repo {
	return &Repo{dir: dir}
}

// WithCache fronts file loads with a store-backed snapshot cache.
func (r *Repo) WithCache(cache db.KVStore, keyPrefix string, ttl time.Duration) *Repo {
	r.cache = cache
	r.keyPrefix = keyPrefix
	r.ttl = ttl
	return r
}

// Get returns the materialized catalog for an identifier.
// Returns domain.ErrCatalogNotFound for unknown identifiers and
// domain.ErrInvalidCatalog when the file fails schema validation.
func (r *Repo) Get(ctx context.Context, catalogID string) ([]domcat.Item, error) {
	if !catalogIDPattern.MatchString(catalogID) {
		return nil, fmt.Errorf("catalog id %q: %w", catalogID, domain.ErrCatalogNotFound)
	}

	if items, ok := r.fromCache(ctx, catalogID); ok {
		return items, nil
	}

	items, err := r.loadFile(catalogID)
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, catalogID, items)
	return items, nil
}

func (r *Repo) loadFile(catalogID string) ([]domcat.Item, error) {
	path := filepath.Join(r.dir, catalogID+".yaml")

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("catalog %q: %w", catalogID, domain.ErrCatalogNotFound)
		}
		return nil, fmt.Errorf("read catalog %q: %w", catalogID, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog %q: %w: %w", catalogID, domain.ErrInvalidCatalog, err)
	}

	items, err := itemsFromFile(file)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w: %w", catalogID, domain.ErrInvalidCatalog, err)
	}
	return items, nil
}

func (r *Repo) cacheKey(catalogID string) string {
	return r.keyPrefix + "catalog:" + catalogID
}

func (r *Repo) fromCache(ctx context.Context, catalogID string) ([]domcat.Item, bool) {
	if r.cache == nil {
		return nil, false
	}

	data, err := r.cache.Get(ctx, r.cacheKey(catalogID))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			logger.FromContext(ctx).Warn("catalog cache read",
				zap.String("catalog", catalogID), zap.Error(err))
		}
		return nil, false
	}

	var rows []itemSnapshot
	if err := json.Unmarshal(data, &rows); err != nil {
		logger.FromContext(ctx).Warn("catalog cache decode",
			zap.String("catalog", catalogID), zap.Error(err))
		return nil, false
	}
	return itemsFromSnapshots(rows), true
}

func (r *Repo) toCache(ctx context.Context, catalogID string, items []domcat.Item) {
	if r.cache == nil {
		return
	}

	data, err := json.Marshal(itemsToSnapshots(items))
	if err != nil {
		logger.FromContext(ctx).Warn("catalog cache encode",
			zap.String("catalog", catalogID), zap.Error(err))
		return
	}
	if err := r.cache.SetWithTTL(ctx, r.cacheKey(catalogID), data, r.ttl); err != nil {
		logger.FromContext(ctx).Warn("catalog cache write",
			zap.String("catalog", catalogID), zap.Error(err))
	}
}
