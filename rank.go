package cavist

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cavist-cloud/cavist/internal/domain/rank"
	analyticsuc "github.com/cavist-cloud/cavist/internal/usecase/analytics"
)

// RankOptions configures a ranking call.
type RankOptions struct {
	// Domain selects the vocabulary pack, e.g. "wine".
	Domain string
	// Tenant selects an optional per-tenant pack overlay.
	Tenant string

	Filters map[string][]string
	Budget  *float64
	Limit   int
}

// Item is one ranked catalog entry.
type Item struct {
	SKU    string
	Name   string
	Price  *float64
	Facets map[string][]string
}

// Trace is the per-item scoring breakdown, parallel to RankResult.Items.
type Trace struct {
	SKU        string
	Score      float64
	Matched    int
	TotalAsked int
	// BudgetDelta is nil for items without a price.
	BudgetDelta *float64
}

// Diagnostics reports requested filters that did not resolve against the
// domain pack vocabulary.
type Diagnostics struct {
	UnknownFacetKeys   []string
	UnknownFacetValues map[string][]string
}

// RankResult is the outcome of a ranking call.
type RankResult struct {
	OK            bool
	Reason        string
	Total         int
	Limit         int
	BudgetRelaxed bool
	Items         []Item
	Debug         []Trace
	Diagnostics   Diagnostics
}

// Rank runs a ranking call against one catalog.
func (c *Client) Rank(ctx context.Context, catalog string, opts *RankOptions) (RankResult, error) {
	if opts == nil {
		opts = &RankOptions{}
	}

	limit := opts.Limit
	if limit == 0 {
		limit = rank.DefaultLimit
	}
	criteria := rank.NewCriteria(opts.Filters, opts.Budget, limit)

	outcome, err := c.rankSvc.Rank(ctx, catalog, opts.Domain, opts.Tenant, criteria)
	if err != nil {
		return RankResult{}, fmt.Errorf("rank: %w", err)
	}
	return fromOutcome(outcome), nil
}

// Summarize asks the configured chat model for a short note on a fresh
// ranking call. Requires WithOpenAI.
func (c *Client) Summarize(ctx context.Context, catalog string, opts *RankOptions) (RankResult, string, error) {
	if opts == nil {
		opts = &RankOptions{}
	}

	limit := opts.Limit
	if limit == 0 {
		limit = rank.DefaultLimit
	}
	criteria := rank.NewCriteria(opts.Filters, opts.Budget, limit)

	outcome, err := c.rankSvc.Rank(ctx, catalog, opts.Domain, opts.Tenant, criteria)
	if err != nil {
		return RankResult{}, "", fmt.Errorf("rank: %w", err)
	}

	result := fromOutcome(outcome)
	if !outcome.OK() {
		return result, "", nil
	}

	note, err := c.summarySvc.Summarize(ctx, outcome)
	if err != nil {
		return result, "", fmt.Errorf("summarize: %w", err)
	}
	return result, note, nil
}

// Intent is the structured form of a free-text query.
type Intent struct {
	// Operation is "rank" or "analytics".
	Operation string
	Filters   map[string][]string
	Budget    *float64
	Limit     int
}

// ResolveIntent parses a free-text query into a structured intent, using the
// chat model as fallback when the built-in patterns fail.
func (c *Client) ResolveIntent(ctx context.Context, query string) (Intent, error) {
	parsed, err := c.intentRes.Resolve(ctx, query)
	if err != nil {
		return Intent{}, fmt.Errorf("resolve intent: %w", err)
	}
	return Intent{
		Operation: string(parsed.Operation),
		Filters:   parsed.Filters,
		Budget:    parsed.Budget,
		Limit:     parsed.Limit,
	}, nil
}

// AnalyticsBucket is one time bucket of an analytics report.
type AnalyticsBucket struct {
	Start time.Time
	Count int64
}

// AnalyticsValue is one facet value total of an analytics report.
type AnalyticsValue struct {
	Value string
	Count int64
}

// AnalyticsReport aggregates recorded ranking events.
type AnalyticsReport struct {
	Total     int64
	Buckets   []AnalyticsBucket
	TopValues []AnalyticsValue
}

// Analytics aggregates recorded events for one catalog. granularity is
// "day", "week" or "month"; empty defaults to "day". Requires a store.
func (c *Client) Analytics(
	ctx context.Context, catalog string,
	from, to time.Time, granularity string, topN int,
) (AnalyticsReport, error) {
	report, err := c.analyticsSvc.Report(
		ctx, catalog, from, to, analyticsuc.Granularity(granularity), topN,
	)
	if err != nil {
		return AnalyticsReport{}, fmt.Errorf("analytics: %w", err)
	}

	out := AnalyticsReport{
		Total:     report.Total,
		Buckets:   make([]AnalyticsBucket, len(report.Buckets)),
		TopValues: make([]AnalyticsValue, len(report.TopValues)),
	}
	for i, b := range report.Buckets {
		out.Buckets[i] = AnalyticsBucket{Start: b.Start, Count: b.Count}
	}
	for i, v := range report.TopValues {
		out.TopValues[i] = AnalyticsValue{Value: v.Value, Count: v.Count}
	}
	return out, nil
}

func fromOutcome(outcome rank.Outcome) RankResult {
	result := RankResult{
		OK:            outcome.OK(),
		Reason:        string(outcome.Reason()),
		Total:         outcome.Total(),
		Limit:         outcome.LimitUsed(),
		BudgetRelaxed: outcome.BudgetRelaxed(),
		Diagnostics: Diagnostics{
			UnknownFacetKeys:   outcome.Diagnostics().UnknownFacetKeys(),
			UnknownFacetValues: outcome.Diagnostics().UnknownFacetValues(),
		},
	}

	items := outcome.Items()
	result.Items = make([]Item, len(items))
	for i, item := range items {
		out := Item{SKU: item.SKU(), Name: item.Name(), Facets: item.Facets()}
		if price, ok := item.Price(); ok {
			out.Price = &price
		}
		result.Items[i] = out
	}

	debug := outcome.Debug()
	result.Debug = make([]Trace, len(debug))
	for i, tr := range debug {
		out := Trace{
			SKU:        tr.SKU,
			Score:      tr.Score,
			Matched:    tr.Matched,
			TotalAsked: tr.TotalAsked,
		}
		if !math.IsInf(tr.BudgetDelta, 0) {
			delta := tr.BudgetDelta
			out.BudgetDelta = &delta
		}
		result.Debug[i] = out
	}

	return result
}
