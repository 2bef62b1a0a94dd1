package rank

import (
	"context"

	"github.com/cavist-cloud/cavist/internal/domain/catalog"
	"github.com/cavist-cloud/cavist/internal/domain/pack"
)

// CatalogReader loads materialized catalog snapshots.
type CatalogReader interface {
	Get(ctx context.Context, catalogID string) ([]catalog.Item, error)
}

// PackReader loads domain packs, optionally scoped to a tenant.
type PackReader interface {
	Get(ctx context.Context, domainID, tenant string) (pack.Pack, error)
}

// EventRecorder records requested facet values for later analytics.
type EventRecorder interface {
	RecordRank(ctx context.Context, catalogID string, filters map[string][]string) error
}
