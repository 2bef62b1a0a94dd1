package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cavist-cloud/cavist/internal/domain"
)

// Chat is the minimal completion surface the resolver needs.
type Chat interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = `You convert catalog queries into JSON. Reply with ONLY a JSON object:
{"operation":"rank"|"analytics","filters":{"key":["value"]},"budget":number|null,"limit":number|null}
Use lowercase filter keys. Omit fields you cannot infer.`

// Resolver resolves queries regex-first with an optional chat fallback.
type Resolver struct {
	chat Chat
}

// NewResolver creates a resolver. chat may be nil; then only the regex
// patterns apply.
func NewResolver(chat Chat) *Resolver {
	return &Resolver{chat: chat}
}

// Resolve parses a query into an intent. Returns domain.ErrIntentUnresolved
// when neither the patterns nor the chat model produce anything structured.
func (r *Resolver) Resolve(ctx context.Context, query string) (Intent, error) {
	if parsed, ok := Route(query); ok {
		return parsed, nil
	}

	if r.chat == nil {
		return Intent{}, fmt.Errorf("query %q: %w", query, domain.ErrIntentUnresolved)
	}

	reply, err := r.chat.Complete(ctx, systemPrompt, query)
	if err != nil {
		return Intent{}, fmt.Errorf("resolve intent: %w", err)
	}

	parsed, err := parseIntentReply(reply)
	if err != nil {
		return Intent{}, fmt.Errorf("query %q: %w: %w", query, domain.ErrIntentUnresolved, err)
	}
	return parsed, nil
}

type intentReply struct {
	Operation string              `json:"operation"`
	Filters   map[string][]string `json:"filters"`
	Budget    *float64            `json:"budget"`
	Limit     *int                `json:"limit"`
}

func parseIntentReply(reply string) (Intent, error) {
	reply = strings.TrimSpace(reply)
	// Models wrap JSON in code fences despite instructions.
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var raw intentReply
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return Intent{}, fmt.Errorf("decode reply: %w", err)
	}

	out := Intent{Filters: map[string][]string{}, Budget: raw.Budget}
	switch raw.Operation {
	case string(OpAnalytics):
		out.Operation = OpAnalytics
	case string(OpRank), "":
		out.Operation = OpRank
	default:
		return Intent{}, fmt.Errorf("unknown operation %q", raw.Operation)
	}

	for key, values := range raw.Filters {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		for _, value := range values {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			out.Filters[key] = append(out.Filters[key], value)
		}
	}
	if raw.Limit != nil {
		out.Limit = *raw.Limit
	}

	if out.Operation == OpRank && len(out.Filters) == 0 && out.Budget == nil && out.Limit == 0 {
		return Intent{}, fmt.Errorf("reply carries no constraints")
	}
	return out, nil
}
