// Package pack loads domain packs from YAML flat files with optional
// per-tenant overlays.
package pack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cavist-cloud/cavist/internal/domain"
	dompack "github.com/cavist-cloud/cavist/internal/domain/pack"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Repo loads domain packs from <dir>/<domain>.yaml, merging an optional
// <dir>/<domain>.<tenant>.yaml overlay on top. Parsed packs are cached in
// memory; packs are configuration and change only with a restart.
type Repo struct {
	dir string

	mu    sync.RWMutex
	cache map[string]dompack.Pack
}

// New creates a file-backed domain pack repository.
func New(dir string) *Repo {
	return &Repo{dir: dir, cache: make(map[string]dompack.Pack)}
}

// Get returns the pack for a domain, scoped to a tenant when one is given.
// Returns domain.ErrPackNotFound for unknown domains; a missing tenant
// overlay is tolerated and yields the base pack.
func (r *Repo) Get(ctx context.Context, domainID, tenant string) (dompack.Pack, error) {
	if !idPattern.MatchString(domainID) {
		return dompack.Pack{}, fmt.Errorf("domain %q: %w", domainID, domain.ErrPackNotFound)
	}
	if tenant != "" && !idPattern.MatchString(tenant) {
		return dompack.Pack{}, fmt.Errorf("tenant %q: %w", tenant, domain.ErrPackNotFound)
	}

	cacheKey := domainID + "/" + tenant

	r.mu.RLock()
	cached, ok := r.cache[cacheKey]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	base, err := r.loadFile(domainID + ".yaml")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dompack.Pack{}, fmt.Errorf("domain %q: %w", domainID, domain.ErrPackNotFound)
		}
		return dompack.Pack{}, err
	}

	if tenant != "" {
		overlay, err := r.loadFile(domainID + "." + tenant + ".yaml")
		switch {
		case err == nil:
			base = base.Merge(overlay)
		case errors.Is(err, os.ErrNotExist):
			// No overlay for this tenant; the base pack applies.
		default:
			return dompack.Pack{}, err
		}
	}

	r.mu.Lock()
	r.cache[cacheKey] = base
	r.mu.Unlock()

	return base, nil
}

func (r *Repo) loadFile(filename string) (dompack.Pack, error) {
	data, err := os.ReadFile(filepath.Clean(filepath.Join(r.dir, filename)))
	if err != nil {
		return dompack.Pack{}, err
	}

	var file packFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return dompack.Pack{}, fmt.Errorf("pack %s: %w: %w", filename, domain.ErrInvalidPack, err)
	}

	p, err := packFromFile(file)
	if err != nil {
		return dompack.Pack{}, fmt.Errorf("pack %s: %w: %w", filename, domain.ErrInvalidPack, err)
	}
	return p, nil
}
