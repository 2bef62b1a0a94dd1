package events

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

// --- Mocks ---

type fakeHashes struct {
	fields  map[string]map[string]int64
	expires map[string]time.Duration
	incrErr error
	readErr error
}

func newFakeHashes() *fakeHashes {
	return &fakeHashes{
		fields:  map[string]map[string]int64{},
		expires: map[string]time.Duration{},
	}
}

func (f *fakeHashes) HIncrBy(_ context.Context, key, field string, val int64) error {
	if f.incrErr != nil {
		return f.incrErr
	}
	if f.fields[key] == nil {
		f.fields[key] = map[string]int64{}
	}
	f.fields[key][field] += val
	return nil
}

func (f *fakeHashes) HGetAll(_ context.Context, key string) (map[string]string, error) {
	out := map[string]string{}
	for field, n := range f.fields[key] {
		out[field] = strconv.FormatInt(n, 10)
	}
	return out, nil
}

func (f *fakeHashes) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]map[string]string, len(keys))
	for i, key := range keys {
		m, _ := f.HGetAll(ctx, key)
		out[i] = m
	}
	return out, nil
}

func (f *fakeHashes) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	if _, set := f.expires[key]; set && nx {
		return nil
	}
	f.expires[key] = ttl
	return nil
}

// --- Fixtures ---

func fixedStore(hashes *fakeHashes, now time.Time) *Store {
	s := New(hashes, "cavist:", 92*24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

var testNow = time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)

// --- Tests ---

func TestRecordRank_IncrementsDayCounters(t *testing.T) {
	hashes := newFakeHashes()
	store := fixedStore(hashes, testNow)

	err := store.RecordRank(context.Background(), "house", map[string][]string{
		"color": {"Red", "  White "},
		"body":  {"light"},
	})
	if err != nil {
		t.Fatalf("RecordRank() error = %v", err)
	}

	key := "cavist:events:house:2026-08-29"
	fields := hashes.fields[key]
	if fields == nil {
		t.Fatalf("day hash %q not written, got %v", key, hashes.fields)
	}
	for field, want := range map[string]int64{
		"color=red": 1, "color=white": 1, "body=light": 1,
	} {
		if fields[field] != want {
			t.Errorf("field %q = %d, want %d", field, fields[field], want)
		}
	}
	if ttl := hashes.expires[key]; ttl != 92*24*time.Hour {
		t.Errorf("retention = %v, want 92 days", ttl)
	}
}

func TestRecordRank_AccumulatesAcrossCalls(t *testing.T) {
	hashes := newFakeHashes()
	store := fixedStore(hashes, testNow)

	for i := 0; i < 3; i++ {
		if err := store.RecordRank(context.Background(), "house",
			map[string][]string{"color": {"red"}}); err != nil {
			t.Fatalf("RecordRank() error = %v", err)
		}
	}

	key := "cavist:events:house:2026-08-29"
	if got := hashes.fields[key]["color=red"]; got != 3 {
		t.Errorf("color=red = %d, want 3", got)
	}
}

func TestRecordRank_IncrError(t *testing.T) {
	hashes := newFakeHashes()
	hashes.incrErr = errors.New("store down")
	store := fixedStore(hashes, testNow)

	err := store.RecordRank(context.Background(), "house", map[string][]string{"color": {"red"}})
	if !errors.Is(err, hashes.incrErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

func TestCountsByDay_SkipsEmptyDays(t *testing.T) {
	hashes := newFakeHashes()
	hashes.fields["cavist:events:house:2026-08-27"] = map[string]int64{"color=red": 2}
	hashes.fields["cavist:events:house:2026-08-29"] = map[string]int64{"color=red": 1, "body=light": 4}
	store := fixedStore(hashes, testNow)

	from := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	days, err := store.CountsByDay(context.Background(), "house", from, to)
	if err != nil {
		t.Fatalf("CountsByDay() error = %v", err)
	}

	if len(days) != 2 {
		t.Fatalf("got %d days, want 2 (empty days skipped)", len(days))
	}
	if !days[0].Day.Equal(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("days[0].Day = %v", days[0].Day)
	}
	if days[0].Counts["color=red"] != 2 {
		t.Errorf("days[0] counts = %v", days[0].Counts)
	}
	if days[1].Counts["body=light"] != 4 {
		t.Errorf("days[1] counts = %v", days[1].Counts)
	}
}

func TestCountsByDay_InvertedRange(t *testing.T) {
	store := fixedStore(newFakeHashes(), testNow)

	from := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	if _, err := store.CountsByDay(context.Background(), "house", from, to); err == nil {
		t.Error("inverted range should error")
	}
}

func TestCountsByDay_ReadError(t *testing.T) {
	hashes := newFakeHashes()
	hashes.readErr = errors.New("store down")
	store := fixedStore(hashes, testNow)

	from := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	_, err := store.CountsByDay(context.Background(), "house", from, to)
	if !errors.Is(err, hashes.readErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}
