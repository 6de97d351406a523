// Package state manages the durable seen-ledger. The ledger is loaded whole at
// run start, mutated in memory as new item ids are discovered, and written
// whole at run end. It only grows; retention is out of scope.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SeenEntry records when an item id was first observed and for which URL.
type SeenEntry struct {
	URL       string `json:"url"`
	FirstSeen string `json:"first_seen"`
}

// State is the seen-ledger plus the last completed run timestamp. It is an
// explicit object passed into and returned from the run, never a global.
type State struct {
	Seen    map[string]SeenEntry `json:"seen"`
	LastRun string               `json:"last_run,omitempty"`
}

// New returns an empty state.
func New() *State {
	return &State{Seen: make(map[string]SeenEntry)}
}

// IsNew reports whether the id has never been seen before.
func (s *State) IsNew(id string) bool {
	_, ok := s.Seen[id]
	return !ok
}

// Record marks the id as seen with a first-seen timestamp of now.
func (s *State) Record(id, url string) {
	s.Seen[id] = SeenEntry{URL: url, FirstSeen: NowISO()}
}

// TouchLastRun stamps the state with the current time.
func (s *State) TouchLastRun() {
	s.LastRun = NowISO()
}

// Load reads the ledger document from path. A missing file yields an empty
// state, not an error.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	st := New()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if st.Seen == nil {
		st.Seen = make(map[string]SeenEntry)
	}
	return st, nil
}

// Save writes the full ledger document to path, creating parent directories as
// needed.
func Save(path string, st *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", path, err)
	}
	return nil
}

// NowISO returns the current UTC time in RFC 3339 format. All ledger and item
// timestamps use this format.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
