package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/cavist-cloud/cavist/internal/domain"
)

type mockChat struct {
	reply string
	err   error

	gotSystem string
	gotUser   string
	calls     int
}

func (m *mockChat) Complete(_ context.Context, system, user string) (string, error) {
	m.calls++
	m.gotSystem = system
	m.gotUser = user
	return m.reply, m.err
}

func TestResolve_RegexFirstSkipsChat(t *testing.T) {
	chat := &mockChat{}
	resolver := NewResolver(chat)

	parsed, err := resolver.Resolve(context.Background(), "color: red under $20")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if chat.calls != 0 {
		t.Errorf("chat called %d times, want 0", chat.calls)
	}
	if len(parsed.Filters["color"]) != 1 {
		t.Errorf("Filters = %v", parsed.Filters)
	}
}

func TestResolve_ChatFallback(t *testing.T) {
	chat := &mockChat{reply: `{"operation":"rank","filters":{"color":["red"]},"budget":18,"limit":3}`}
	resolver := NewResolver(chat)

	parsed, err := resolver.Resolve(context.Background(), "something light for a summer picnic")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if chat.calls != 1 {
		t.Fatalf("chat called %d times, want 1", chat.calls)
	}
	if chat.gotUser != "something light for a summer picnic" {
		t.Errorf("chat got query %q", chat.gotUser)
	}
	if parsed.Budget == nil || *parsed.Budget != 18 || parsed.Limit != 3 {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestResolve_CodeFencedReply(t *testing.T) {
	chat := &mockChat{reply: "```json\n{\"operation\":\"analytics\"}\n```"}
	resolver := NewResolver(chat)

	parsed, err := resolver.Resolve(context.Background(), "how did things go")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if parsed.Operation != OpAnalytics {
		t.Errorf("Operation = %q, want analytics", parsed.Operation)
	}
}

func TestResolve_NoChatConfigured(t *testing.T) {
	resolver := NewResolver(nil)

	_, err := resolver.Resolve(context.Background(), "anything good")
	if !errors.Is(err, domain.ErrIntentUnresolved) {
		t.Errorf("error = %v, want ErrIntentUnresolved", err)
	}
}

func TestResolve_GarbageReply(t *testing.T) {
	chat := &mockChat{reply: "I would recommend a nice pinot noir."}
	resolver := NewResolver(chat)

	_, err := resolver.Resolve(context.Background(), "anything good")
	if !errors.Is(err, domain.ErrIntentUnresolved) {
		t.Errorf("error = %v, want ErrIntentUnresolved", err)
	}
}

func TestResolve_ChatError(t *testing.T) {
	wantErr := errors.New("provider down")
	resolver := NewResolver(&mockChat{err: wantErr})

	_, err := resolver.Resolve(context.Background(), "anything good")
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestParseIntentReply_EmptyConstraints(t *testing.T) {
	if _, err := parseIntentReply(`{"operation":"rank"}`); err == nil {
		t.Error("constraint-free rank reply should be rejected")
	}
}
