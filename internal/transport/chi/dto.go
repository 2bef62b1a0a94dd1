package chi

import (
	"math"

	"github.com/cavist-cloud/cavist/internal/domain/catalog"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
	"github.com/cavist-cloud/cavist/internal/usecase/analytics"
	"github.com/cavist-cloud/cavist/internal/usecase/intent"
)

// ErrorCode tags machine-readable API error variants.
type ErrorCode string

const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeCatalogNotFound   ErrorCode = "catalog_not_found"
	CodePackNotFound      ErrorCode = "pack_not_found"
	CodeIntentUnresolved  ErrorCode = "intent_unresolved"
	CodeChatNotConfigured ErrorCode = "chat_not_configured"
	CodeAnalyticsDisabled ErrorCode = "analytics_disabled"
	CodeChatProviderError ErrorCode = "chat_provider_error"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the uniform API error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// RankRequest is the body of POST /v1/catalogs/{catalog}/rank.
type RankRequest struct {
	Domain    string              `json:"domain"`
	Tenant    string              `json:"tenant,omitempty"`
	Filters   map[string][]string `json:"filters,omitempty"`
	Budget    *float64            `json:"budget,omitempty"`
	Limit     *int                `json:"limit,omitempty"`
	Debug     bool                `json:"debug,omitempty"`
	Summarize bool                `json:"summarize,omitempty"`
}

// RankItem is one ranked catalog entry.
type RankItem struct {
	SKU    string              `json:"sku"`
	Name   string              `json:"name"`
	Price  *float64            `json:"price,omitempty"`
	Facets map[string][]string `json:"facets,omitempty"`
}

// RankTrace is the per-item scoring trace returned in debug mode.
type RankTrace struct {
	SKU         string   `json:"sku"`
	Score       float64  `json:"score"`
	Matched     int      `json:"matched"`
	TotalAsked  int      `json:"totalAsked"`
	BudgetDelta *float64 `json:"budgetDelta,omitempty"`
}

// DiagnosticsBody reports unresolved filter vocabulary.
type DiagnosticsBody struct {
	UnknownFacetKeys   []string            `json:"unknownFacetKeys,omitempty"`
	UnknownFacetValues map[string][]string `json:"unknownFacetValues,omitempty"`
}

// RankResponse is the body of a ranking reply, successful or not.
type RankResponse struct {
	OK            bool             `json:"ok"`
	Reason        string           `json:"reason,omitempty"`
	Total         int              `json:"total"`
	Limit         int              `json:"limit"`
	BudgetRelaxed bool             `json:"budgetRelaxed"`
	Items         []RankItem       `json:"items,omitempty"`
	Debug         []RankTrace      `json:"debug,omitempty"`
	Diagnostics   *DiagnosticsBody `json:"diagnostics,omitempty"`
	Summary       string           `json:"summary,omitempty"`
}

// IntentRequest is the body of POST /v1/intent.
type IntentRequest struct {
	Query string `json:"query"`
}

// IntentResponse is the structured form of a resolved query.
type IntentResponse struct {
	Operation string              `json:"operation"`
	Filters   map[string][]string `json:"filters,omitempty"`
	Budget    *float64            `json:"budget,omitempty"`
	Limit     int                 `json:"limit,omitempty"`
}

// AnalyticsBucket is one time bucket of the analytics report.
type AnalyticsBucket struct {
	Start string `json:"start"`
	Count int64  `json:"count"`
}

// AnalyticsValue is one facet value total of the analytics report.
type AnalyticsValue struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// AnalyticsResponse is the body of GET /v1/catalogs/{catalog}/analytics.
type AnalyticsResponse struct {
	Granularity string            `json:"granularity"`
	Total       int64             `json:"total"`
	Buckets     []AnalyticsBucket `json:"buckets"`
	TopValues   []AnalyticsValue  `json:"topValues"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func rankResponseFromOutcome(outcome rank.Outcome, debug bool) RankResponse {
	resp := RankResponse{
		OK:            outcome.OK(),
		Reason:        string(outcome.Reason()),
		Total:         outcome.Total(),
		Limit:         outcome.LimitUsed(),
		BudgetRelaxed: outcome.BudgetRelaxed(),
	}

	if items := outcome.Items(); len(items) > 0 {
		resp.Items = make([]RankItem, len(items))
		for i, item := range items {
			resp.Items[i] = rankItemFromDomain(item)
		}
	}

	if debug {
		traces := outcome.Debug()
		resp.Debug = make([]RankTrace, len(traces))
		for i, tr := range traces {
			resp.Debug[i] = rankTraceFromDomain(tr)
		}
	}

	if diags := outcome.Diagnostics(); !diags.IsClean() {
		resp.Diagnostics = &DiagnosticsBody{
			UnknownFacetKeys:   diags.UnknownFacetKeys(),
			UnknownFacetValues: diags.UnknownFacetValues(),
		}
	}

	return resp
}

func rankItemFromDomain(item catalog.Item) RankItem {
	out := RankItem{SKU: item.SKU(), Name: item.Name(), Facets: item.Facets()}
	if price, ok := item.Price(); ok {
		out.Price = &price
	}
	return out
}

func rankTraceFromDomain(tr rank.Trace) RankTrace {
	out := RankTrace{
		SKU:        tr.SKU,
		Score:      tr.Score,
		Matched:    tr.Matched,
		TotalAsked: tr.TotalAsked,
	}
	// +Inf marks a priceless item; JSON has no encoding for it.
	if !math.IsInf(tr.BudgetDelta, 0) {
		delta := tr.BudgetDelta
		out.BudgetDelta = &delta
	}
	return out
}

func intentResponseFromDomain(parsed intent.Intent) IntentResponse {
	return IntentResponse{
		Operation: string(parsed.Operation),
		Filters:   parsed.Filters,
		Budget:    parsed.Budget,
		Limit:     parsed.Limit,
	}
}

func analyticsResponseFromReport(report analytics.Report, granularity analytics.Granularity) AnalyticsResponse {
	resp := AnalyticsResponse{
		Granularity: string(granularity),
		Total:       report.Total,
		Buckets:     make([]AnalyticsBucket, len(report.Buckets)),
		TopValues:   make([]AnalyticsValue, len(report.TopValues)),
	}
	for i, b := range report.Buckets {
		resp.Buckets[i] = AnalyticsBucket{Start: b.Start.Format("2006-01-02"), Count: b.Count}
	}
	for i, v := range report.TopValues {
		resp.TopValues[i] = AnalyticsValue{Value: v.Value, Count: v.Count}
	}
	return resp
}
