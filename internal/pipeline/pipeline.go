// Package pipeline orchestrates one digest run: collect, dedup, classify,
// enrich, persist, render. The run is a transformation of the seen-ledger
// state object; the caller persists the state only when the run succeeds, so a
// failed run's items are re-collected and retried next time.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agentdigest/internal/analyze"
	"agentdigest/internal/collect"
	"agentdigest/internal/core"
	"agentdigest/internal/logger"
	"agentdigest/internal/render"
	"agentdigest/internal/state"
	"agentdigest/internal/summarize"
)

// ItemStore is the durable store consulted before any enrichment work.
type ItemStore interface {
	GetItem(id string) (*core.Item, error)
	UpsertItem(item *core.Item) error
}

// ExtractFunc fetches and extracts article text. It is best effort and returns
// empty strings on failure.
type ExtractFunc func(ctx context.Context, url string) (text, contentHash string)

// Options wires the run's collaborators.
type Options struct {
	Collectors []collect.Collector
	Store      ItemStore
	Summarizer summarize.Summarizer
	Extract    ExtractFunc // nil disables text extraction
	OutputDir  string
	Now        func() time.Time // nil defaults to time.Now
}

// Result reports what a completed run produced.
type Result struct {
	DigestPath string // empty when there were no new items
	NewItems   int
}

// Run executes one digest run over the given seen-ledger state. The state is
// mutated in memory; durability is the caller's responsibility and should only
// happen when Run returns without error.
//
// Enrichment is fail-fast: a summarization error aborts the run before any
// digest is written. Items persisted earlier in the run stay persisted and
// short-circuit as cache hits on the next run.
func Run(ctx context.Context, st *state.State, opts Options) (Result, error) {
	if opts.Store == nil {
		return Result{}, fmt.Errorf("pipeline requires a store")
	}
	if opts.Summarizer == nil {
		return Result{}, fmt.Errorf("pipeline requires a summarizer")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	runID := uuid.NewString()
	log := logger.Get().With("run_id", runID)

	raw := collect.All(ctx, opts.Collectors)
	log.Info("Collection finished", "raw_items", len(raw))

	newItems := dedup(raw, st)
	if len(newItems) == 0 {
		log.Info("No new items found")
		st.TouchLastRun()
		return Result{}, nil
	}
	log.Info("Deduplication finished", "new_items", len(newItems))

	analysis := analyze.Analyze(newItems)

	for _, item := range analysis.Items {
		if err := enrich(ctx, item, opts); err != nil {
			return Result{}, err
		}
	}

	digestPath, err := render.RenderDigest(opts.OutputDir, analysis, now())
	if err != nil {
		return Result{}, fmt.Errorf("failed to render digest: %w", err)
	}
	log.Info("Digest rendered", "path", digestPath)

	st.TouchLastRun()
	return Result{DigestPath: digestPath, NewItems: len(newItems)}, nil
}

// dedup filters out already-seen items and records the rest in the ledger with
// a first-seen timestamp. Duplicate urls within one collection collapse to a
// single item because they share an id.
func dedup(raw []core.Item, st *state.State) []*core.Item {
	var fresh []*core.Item
	for i := range raw {
		item := raw[i]
		if !st.IsNew(item.ID) {
			continue
		}
		st.Record(item.ID, item.URL)
		item.FetchedAt = state.NowISO()
		fresh = append(fresh, &item)
	}
	return fresh
}

// enrich attaches summary fields to the item, consulting the durable store
// first. A persisted record with a non-empty summary is a cache hit: its
// enrichment is copied over and neither extraction nor summarization runs
// again for that item. Everything else is a cache miss: best-effort text
// extraction, required summarization, then an atomic upsert.
func enrich(ctx context.Context, item *core.Item, opts Options) error {
	existing, err := opts.Store.GetItem(item.ID)
	if err != nil {
		return fmt.Errorf("store lookup failed for %s: %w", item.ID, err)
	}
	if existing != nil && existing.Enriched() {
		item.Summary = existing.Summary
		item.WhyItMatters = existing.WhyItMatters
		item.Actions = existing.Actions
		logger.Debug("Enrichment cache hit", "id", item.ID, "url", item.URL)
		return nil
	}

	// Best effort, articles only. Failures degrade to empty text; the
	// summarizer still runs from title and URL context.
	if item.Kind == core.KindArticle && opts.Extract != nil {
		item.ContentText, item.ContentHash = opts.Extract(ctx, item.URL)
	}

	payload, err := opts.Summarizer.Summarize(ctx, summarize.Request{
		Title:     item.Title,
		URL:       item.URL,
		Kind:      item.Kind,
		Published: item.Published,
		Text:      item.ContentText,
	})
	if err != nil {
		return fmt.Errorf("enrichment aborted: %w", err)
	}

	item.Summary = payload.Summary
	item.WhyItMatters = payload.WhyItMatters
	item.Actions = payload.Actions
	if len(item.Actions) > summarize.MaxActions {
		item.Actions = item.Actions[:summarize.MaxActions]
	}

	if err := opts.Store.UpsertItem(item); err != nil {
		return fmt.Errorf("failed to persist item %s: %w", item.ID, err)
	}
	return nil
}
