package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStorage(t *testing.T) {
	store := newTestStorage(t)

	if store.db == nil {
		t.Error("database connection is nil")
	}
}

func TestNewStorageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStorage(path)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := store.AddEntry(&Entry{Input: "now", Result: time.Now(), Zone: "UTC"}); err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}
	store.Close()

	reopened, err := NewStorage(path)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry after reopening, got %d", count)
	}
}

func TestAddEntry(t *testing.T) {
	store := newTestStorage(t)

	entry := &Entry{
		Input:  "next tuesday",
		Result: time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC),
		Zone:   "UTC",
	}

	if err := store.AddEntry(entry); err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}

	if entry.ID == 0 {
		t.Error("expected ID to be set after insert")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to default to now")
	}
}

func TestRecent(t *testing.T) {
	store := newTestStorage(t)

	base := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	inputs := []string{"yesterday", "tomorrow", "bogus!", "5pm"}
	for i, input := range inputs {
		entry := &Entry{
			Input:     input,
			Result:    base.Add(time.Duration(i) * time.Hour),
			Zone:      "UTC",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if input == "bogus!" {
			entry.Error = "unrecognized phrase"
		}
		if err := store.AddEntry(entry); err != nil {
			t.Fatalf("failed to add entry: %v", err)
		}
	}

	entries, err := store.Recent(3)
	if err != nil {
		t.Fatalf("failed to fetch history: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Input != "5pm" {
		t.Errorf("expected newest entry first, got %q", entries[0].Input)
	}
	if !entries[0].Result.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("unexpected result %s", entries[0].Result)
	}
	if entries[1].OK() || entries[1].Error != "unrecognized phrase" {
		t.Errorf("expected failed entry, got %+v", entries[1])
	}
	if !entries[1].Result.IsZero() {
		t.Errorf("expected zero result for failed parse, got %s", entries[1].Result)
	}

	all, err := store.Recent(0)
	if err != nil {
		t.Fatalf("failed to fetch history: %v", err)
	}
	if len(all) != len(inputs) {
		t.Errorf("expected %d entries, got %d", len(inputs), len(all))
	}
}

func TestPrune(t *testing.T) {
	store := newTestStorage(t)

	now := time.Now()
	ages := []time.Duration{time.Hour, 24 * time.Hour, 40 * 24 * time.Hour, 90 * 24 * time.Hour}
	for _, age := range ages {
		entry := &Entry{Input: "now", Result: now, Zone: "Local", CreatedAt: now.Add(-age)}
		if err := store.AddEntry(entry); err != nil {
			t.Fatalf("failed to add entry: %v", err)
		}
	}

	removed, err := store.Prune(now.Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 entries removed, got %d", removed)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 entries left, got %d", count)
	}
}
