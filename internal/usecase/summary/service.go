// Package summary renders a short natural-language note for a ranking
// outcome through a chat model.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/cavist-cloud/cavist/internal/domain"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
)

// Chat is the minimal completion surface the service needs.
type Chat interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = `You are a concise catalog concierge. Given a ranked selection,
write 2-3 sentences recommending the top picks. Mention prices when present.
No markdown, no lists.`

// Service summarizes ranking outcomes. chat may be nil; then Summarize
// reports domain.ErrChatNotConfigured.
type Service struct {
	chat Chat
}

// New creates a summary service.
func New(chat Chat) *Service {
	return &Service{chat: chat}
}

// Summarize asks the chat model for a short note on the outcome's top items.
func (s *Service) Summarize(ctx context.Context, outcome rank.Outcome) (string, error) {
	if s.chat == nil {
		return "", domain.ErrChatNotConfigured
	}
	if !outcome.OK() {
		return "", fmt.Errorf("nothing to summarize: outcome is %s", outcome.Reason())
	}

	reply, err := s.chat.Complete(ctx, systemPrompt, buildPrompt(outcome))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("summarize: %w: empty reply", domain.ErrChatProviderError)
	}
	return reply, nil
}

func buildPrompt(outcome rank.Outcome) string {
	var b strings.Builder

	criteria := outcome.Criteria()
	if criteria.HasFilters() {
		b.WriteString("Requested:")
		for key, values := range criteria.Filters() {
			fmt.Fprintf(&b, " %s=%s", key, strings.Join(values, "|"))
		}
		b.WriteString("\n")
	}
	if budget, ok := criteria.Budget(); ok {
		fmt.Fprintf(&b, "Budget: %.2f", budget)
		if outcome.BudgetRelaxed() {
			b.WriteString(" (no pick fit, budget was relaxed)")
		}
		b.WriteString("\n")
	}

	b.WriteString("Selection:\n")
	for i, item := range outcome.Items() {
		fmt.Fprintf(&b, "%d. %s", i+1, item.Name())
		if price, ok := item.Price(); ok {
			fmt.Fprintf(&b, " (%.2f)", price)
		}
		b.WriteString("\n")
	}
	return b.String()
}
