// Package analytics holds the event-count shapes shared between the events
// store and the aggregation service.
package analytics

import "time"

// DayCounts holds per-value event counters for one UTC day.
type DayCounts struct {
	Day    time.Time
	Counts map[string]int64
}
