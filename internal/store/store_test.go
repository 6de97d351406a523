package store

import (
	"os"
	"path/filepath"
	"testing"

	"agentdigest/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testItem() *core.Item {
	return &core.Item{
		ID:           "abc123",
		URL:          "https://example.com/post",
		Title:        "ERC-8004 registry update",
		Source:       "https://example.com/feed",
		Kind:         core.KindArticle,
		Published:    "2026-08-20T10:00:00Z",
		FetchedAt:    "2026-08-24T06:00:00Z",
		ContentText:  "Extracted body text.",
		ContentHash:  "deadbeef",
		Bucket:       "erc8004",
		Score:        2.5,
		Summary:      "A short summary.",
		WhyItMatters: "It matters.",
		Actions:      []string{"read spec", "try demo"},
	}
}

func TestNewStore(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := os.Stat(filepath.Join(tmpDir, "items.db")); os.IsNotExist(err) {
		t.Error("Database file should be created")
	}
}

func TestGetItem_Absent(t *testing.T) {
	s := newTestStore(t)

	item, err := s.GetItem("missing")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item != nil {
		t.Errorf("Expected nil for absent item, got %+v", item)
	}
}

func TestUpsertItem_Roundtrip(t *testing.T) {
	s := newTestStore(t)
	item := testItem()

	if err := s.UpsertItem(item); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}

	got, err := s.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected persisted item, got nil")
	}

	if got.URL != item.URL {
		t.Errorf("Expected URL %s, got %s", item.URL, got.URL)
	}
	if got.Kind != core.KindArticle {
		t.Errorf("Expected kind article, got %s", got.Kind)
	}
	if got.Score != item.Score {
		t.Errorf("Expected score %v, got %v", item.Score, got.Score)
	}
	if got.Summary != item.Summary {
		t.Errorf("Expected summary %q, got %q", item.Summary, got.Summary)
	}
	if len(got.Actions) != 2 || got.Actions[0] != "read spec" {
		t.Errorf("Expected actions to survive roundtrip, got %v", got.Actions)
	}
}

func TestUpsertItem_OverwritesOnConflict(t *testing.T) {
	s := newTestStore(t)

	item := testItem()
	if err := s.UpsertItem(item); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	updated := testItem()
	updated.Summary = "A revised summary."
	updated.Score = 4.0
	updated.Actions = []string{"new action"}
	if err := s.UpsertItem(updated); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	got, err := s.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Summary != "A revised summary." {
		t.Errorf("Expected overwritten summary, got %q", got.Summary)
	}
	if got.Score != 4.0 {
		t.Errorf("Expected overwritten score, got %v", got.Score)
	}
	if len(got.Actions) != 1 || got.Actions[0] != "new action" {
		t.Errorf("Expected overwritten actions, got %v", got.Actions)
	}
}

func TestUpsertItem_EmptyActions(t *testing.T) {
	s := newTestStore(t)

	item := testItem()
	item.Actions = nil
	if err := s.UpsertItem(item); err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}

	got, err := s.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if len(got.Actions) != 0 {
		t.Errorf("Expected no actions, got %v", got.Actions)
	}
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)

	enriched := testItem()
	bare := testItem()
	bare.ID = "def456"
	bare.Summary = ""

	if err := s.UpsertItem(enriched); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertItem(bare); err != nil {
		t.Fatal(err)
	}

	stats, err := s.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.ItemCount != 2 {
		t.Errorf("Expected 2 items, got %d", stats.ItemCount)
	}
	if stats.EnrichedCount != 1 {
		t.Errorf("Expected 1 enriched item, got %d", stats.EnrichedCount)
	}
	if stats.Size == 0 {
		t.Error("Expected non-zero cache size")
	}
}
