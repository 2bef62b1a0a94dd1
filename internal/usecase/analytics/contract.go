package analytics

import (
	"context"
	"time"

	"github.com/cavist-cloud/cavist/internal/domain/analytics"
)

// EventsReader reads day-bucketed event counters.
type EventsReader interface {
	CountsByDay(ctx context.Context, catalogID string, from, to time.Time) ([]analytics.DayCounts, error)
}
