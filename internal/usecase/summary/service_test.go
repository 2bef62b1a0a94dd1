package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cavist-cloud/cavist/internal/domain"
	"github.com/cavist-cloud/cavist/internal/domain/catalog"
	"github.com/cavist-cloud/cavist/internal/domain/rank"
)

type mockChat struct {
	reply   string
	err     error
	gotUser string
}

func (m *mockChat) Complete(_ context.Context, _, user string) (string, error) {
	m.gotUser = user
	return m.reply, m.err
}

func fptr(v float64) *float64 { return &v }

func successOutcome(t *testing.T) rank.Outcome {
	t.Helper()
	item, err := catalog.New("W1", "Alpha Pinot", fptr(18), map[string][]string{"color": {"red"}})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	criteria := rank.NewCriteria(map[string][]string{"color": {"red"}}, fptr(20), 5)
	return rank.Success(criteria, rank.NewDiagnostics(nil, nil), 1,
		[]catalog.Item{item},
		[]rank.Trace{{SKU: "W1", Score: 1.5, Matched: 1, TotalAsked: 1, BudgetDelta: 2}},
		false)
}

func TestSummarize_BuildsPromptFromOutcome(t *testing.T) {
	chat := &mockChat{reply: "Try the Alpha Pinot."}
	svc := New(chat)

	note, err := svc.Summarize(context.Background(), successOutcome(t))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if note != "Try the Alpha Pinot." {
		t.Errorf("note = %q", note)
	}
	for _, want := range []string{"Alpha Pinot", "18.00", "color=red", "Budget: 20.00"} {
		if !strings.Contains(chat.gotUser, want) {
			t.Errorf("prompt missing %q:\n%s", want, chat.gotUser)
		}
	}
}

func TestSummarize_NoChatConfigured(t *testing.T) {
	svc := New(nil)

	_, err := svc.Summarize(context.Background(), successOutcome(t))
	if !errors.Is(err, domain.ErrChatNotConfigured) {
		t.Errorf("error = %v, want ErrChatNotConfigured", err)
	}
}

func TestSummarize_FailedOutcomeRejected(t *testing.T) {
	svc := New(&mockChat{reply: "anything"})
	criteria := rank.NewCriteria(nil, nil, 5)
	outcome := rank.EmptyCatalog(criteria, rank.NewDiagnostics(nil, nil))

	if _, err := svc.Summarize(context.Background(), outcome); err == nil {
		t.Error("expected error for a failed outcome")
	}
}

func TestSummarize_ChatErrorPropagates(t *testing.T) {
	wantErr := errors.New("provider down")
	svc := New(&mockChat{err: wantErr})

	_, err := svc.Summarize(context.Background(), successOutcome(t))
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestSummarize_EmptyReply(t *testing.T) {
	svc := New(&mockChat{reply: "   "})

	_, err := svc.Summarize(context.Background(), successOutcome(t))
	if !errors.Is(err, domain.ErrChatProviderError) {
		t.Errorf("error = %v, want ErrChatProviderError", err)
	}
}
