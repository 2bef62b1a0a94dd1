// Package analytics aggregates recorded facet-hit events into time buckets
// and top-value selections. This is a simple aggregation concern, fully
// separate from the ranking pipeline.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cavist-cloud/cavist/internal/domain"
)

// Granularity selects the date-bucketing scheme for a report.
type Granularity string

const (
	// Day buckets events per UTC day.
	Day Granularity = "day"
	// Week buckets events per ISO week (Monday start).
	Week Granularity = "week"
	// Month buckets events per calendar month.
	Month Granularity = "month"
)

// IsValid reports whether the granularity is one of the declared schemes.
func (g Granularity) IsValid() bool {
	return g == Day || g == Week || g == Month
}

// Top-N selection limits.
const (
	DefaultTopN = 10
	MaxTopN     = 50
)

// Bucket is one time bucket with its event total.
type Bucket struct {
	Start time.Time
	Count int64
}

// ValueCount is one facet value with its event total across the whole range.
type ValueCount struct {
	Value string
	Count int64
}

// Report is an aggregated analytics view over one catalog and date range.
type Report struct {
	Buckets   []Bucket
	TopValues []ValueCount
	Total     int64
}

// Service aggregates event counters into reports.
type Service struct {
	events EventsReader
}

// New creates an analytics service.
func New(events EventsReader) *Service {
	return &Service{events: events}
}

// Report aggregates the [from, to] range into buckets of the requested
// granularity plus the top-N facet values. topN is clamped to [1, MaxTopN];
// an empty granularity defaults to Day.
func (s *Service) Report(
	ctx context.Context, catalogID string,
	from, to time.Time, granularity Granularity, topN int,
) (Report, error) {
	if s.events == nil {
		return Report{}, domain.ErrAnalyticsDisabled
	}
	if granularity == "" {
		granularity = Day
	}
	if !granularity.IsValid() {
		return Report{}, fmt.Errorf("invalid granularity %q", granularity)
	}
	if to.Before(from) {
		return Report{}, fmt.Errorf("range end before start")
	}
	if topN < 1 {
		topN = DefaultTopN
	}
	if topN > MaxTopN {
		topN = MaxTopN
	}

	days, err := s.events.CountsByDay(ctx, catalogID, from, to)
	if err != nil {
		return Report{}, fmt.Errorf("read events: %w", err)
	}

	bucketTotals := make(map[time.Time]int64)
	valueTotals := make(map[string]int64)
	var total int64

	for _, day := range days {
		start := bucketStart(day.Day, granularity)
		for value, count := range day.Counts {
			bucketTotals[start] += count
			valueTotals[value] += count
			total += count
		}
	}

	buckets := make([]Bucket, 0, len(bucketTotals))
	for start, count := range bucketTotals {
		buckets = append(buckets, Bucket{Start: start, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	return Report{
		Buckets:   buckets,
		TopValues: topValues(valueTotals, topN),
		Total:     total,
	}, nil
}

// bucketStart maps a UTC day to the start of its bucket.
func bucketStart(day time.Time, granularity Granularity) time.Time {
	switch granularity {
	case Week:
		// Roll back to Monday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Month:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// topValues selects the n highest-count values, breaking count ties by
// ascending value for deterministic output.
func topValues(totals map[string]int64, n int) []ValueCount {
	out := make([]ValueCount, 0, len(totals))
	for value, count := range totals {
		out = append(out, ValueCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
