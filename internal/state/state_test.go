package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed for missing file: %v", err)
	}
	if st == nil || st.Seen == nil {
		t.Fatal("Expected empty state with initialized seen map")
	}
	if len(st.Seen) != 0 {
		t.Errorf("Expected empty seen map, got %d entries", len(st.Seen))
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "state.json")

	st := New()
	st.Record("id-1", "https://example.com/a")
	st.Record("id-2", "https://example.com/b")
	st.TouchLastRun()

	if err := Save(path, st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Seen) != 2 {
		t.Fatalf("Expected 2 seen entries, got %d", len(loaded.Seen))
	}
	if loaded.Seen["id-1"].URL != "https://example.com/a" {
		t.Errorf("Expected url to survive roundtrip, got %q", loaded.Seen["id-1"].URL)
	}
	if loaded.Seen["id-1"].FirstSeen == "" {
		t.Error("Expected first-seen timestamp to survive roundtrip")
	}
	if loaded.LastRun != st.LastRun {
		t.Errorf("Expected last run %q, got %q", st.LastRun, loaded.LastRun)
	}
}

func TestIsNew(t *testing.T) {
	st := New()

	if !st.IsNew("id-1") {
		t.Error("Unseen id should be new")
	}

	st.Record("id-1", "https://example.com")
	if st.IsNew("id-1") {
		t.Error("Recorded id should not be new")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed state file")
	}
}
