package rank

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cavist-cloud/cavist/internal/domain"
	"github.com/cavist-cloud/cavist/internal/domain/pack"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
	"github.com/cavist-cloud/cavist/internal/logger"
	"github.com/cavist-cloud/cavist/internal/metrics"
)

// Service executes ranking calls against loaded catalogs and domain packs.
type Service struct {
	catalogs CatalogReader
	packs    PackReader
	events   EventRecorder
}

// New creates a ranking service.
func New(catalogs CatalogReader, packs PackReader) *Service {
	return &Service{catalogs: catalogs, packs: packs}
}

// WithEvents enables analytics event recording for successful calls.
func (s *Service) WithEvents(events EventRecorder) *Service {
	s.events = events
	return s
}

// Rank loads the catalog and domain pack, then runs the ranking pipeline.
// A missing domain pack is tolerated: normalization falls back to identity
// and every facet key is reported as unknown.
func (s *Service) Rank(
	ctx context.Context, catalogID, domainID, tenant string, criteria rank.Criteria,
) (rank.Outcome, error) {
	items, err := s.catalogs.Get(ctx, catalogID)
	if err != nil {
		return rank.Outcome{}, fmt.Errorf("get catalog: %w", err)
	}

	p, err := s.packs.Get(ctx, domainID, tenant)
	if err != nil {
		if !errors.Is(err, domain.ErrPackNotFound) {
			return rank.Outcome{}, fmt.Errorf("get pack: %w", err)
		}
		p = pack.Pack{}
	}

	outcome := Rank(items, criteria, p)

	metrics.RankRequestsTotal.WithLabelValues(catalogID, outcomeLabel(outcome)).Inc()
	metrics.RankCandidates.WithLabelValues(catalogID).Observe(float64(outcome.Total()))
	if outcome.BudgetRelaxed() {
		metrics.RankBudgetRelaxedTotal.WithLabelValues(catalogID).Inc()
	}

	if s.events != nil && outcome.OK() && criteria.HasFilters() {
		if err := s.events.RecordRank(ctx, catalogID, criteria.Filters()); err != nil {
			logger.FromContext(ctx).Warn("record rank event",
				zap.String("catalog", catalogID), zap.Error(err))
		}
	}

	return outcome, nil
}

func outcomeLabel(o rank.Outcome) string {
	if o.OK() {
		return "ok"
	}
	return string(o.Reason())
}
