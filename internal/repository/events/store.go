// Package events records ranking facet hits as day-bucketed counters in the
// store and reads them back for aggregation.
package events

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cavist-cloud/cavist/internal/db"
	"github.com/cavist-cloud/cavist/internal/domain/analytics"
)

const dayLayout = "2006-01-02"

// Store persists facet-hit counters as one hash per catalog per UTC day.
// Fields are "facetKey=value" pairs; HINCRBY keeps recording lock-free.
type Store struct {
	hashes    db.HashStore
	keyPrefix string
	retention time.Duration
	now       func() time.Time
}

// New creates an event store. retention bounds how long day hashes live.
func New(hashes db.HashStore, keyPrefix string, retention time.Duration) *Store {
	return &Store{
		hashes:    hashes,
		keyPrefix: keyPrefix,
		retention: retention,
		now:       time.Now,
	}
}

// RecordRank increments the counter of every requested facet value for today.
func (s *Store) RecordRank(ctx context.Context, catalogID string, filters map[string][]string) error {
	key := s.dayKey(catalogID, s.now().UTC())

	for facetKey, values := range filters {
		for _, value := range values {
			field := facetKey + "=" + strings.ToLower(strings.TrimSpace(value))
			if err := s.hashes.HIncrBy(ctx, key, field, 1); err != nil {
				return fmt.Errorf("incr %s: %w", field, err)
			}
		}
	}

	// NX: set the TTL once when the day hash is first written.
	if err := s.hashes.Expire(ctx, key, s.retention, true); err != nil {
		return fmt.Errorf("expire %s: %w", key, err)
	}
	return nil
}

// CountsByDay reads the per-value counters for every day in [from, to].
// Days without events yield no entry.
func (s *Store) CountsByDay(
	ctx context.Context, catalogID string, from, to time.Time,
) ([]analytics.DayCounts, error) {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC().Truncate(24 * time.Hour)
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s before start %s", to.Format(dayLayout), from.Format(dayLayout))
	}

	var days []time.Time
	var keys []string
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
		keys = append(keys, s.dayKey(catalogID, day))
	}

	hashes, err := s.hashes.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read day counters: %w", err)
	}

	var out []analytics.DayCounts
	for i, fields := range hashes {
		if len(fields) == 0 {
			continue
		}
		counts := make(map[string]int64, len(fields))
		for field, raw := range fields {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("counter %s: %w", field, err)
			}
			counts[field] = n
		}
		out = append(out, analytics.DayCounts{Day: days[i], Counts: counts})
	}
	return out, nil
}

func (s *Store) dayKey(catalogID string, day time.Time) string {
	return s.keyPrefix + "events:" + catalogID + ":" + day.Format(dayLayout)
}
