package core

// Kind identifies what sort of content an item is.
type Kind string

const (
	KindArticle Kind = "article"
	KindRelease Kind = "release"
	KindCommit  Kind = "commit"
)

// Item is one unit of ingested content as it moves through the pipeline:
// collected raw, then classified and scored, then enriched and persisted.
type Item struct {
	ID           string   `json:"id"`             // Deterministic hash of the canonical URL
	Source       string   `json:"source"`         // Origin (feed URL or github:<repo>:<collector>)
	Title        string   `json:"title"`          // Item title, whitespace-collapsed
	URL          string   `json:"url"`            // Canonical URL
	Published    string   `json:"published"`      // Raw timestamp string from the source, not parsed
	Kind         Kind     `json:"kind"`           // article, release, or commit
	Bucket       string   `json:"bucket"`         // Topic bucket assigned by the classifier
	Score        float64  `json:"score"`          // Ranking score within the bucket
	ContentText  string   `json:"content_text"`   // Extracted article text (may be empty)
	ContentHash  string   `json:"content_hash"`   // Hash of a bounded prefix of ContentText
	Summary      string   `json:"summary"`        // LLM summary; non-empty means fully enriched
	WhyItMatters string   `json:"why_it_matters"` // One to two sentences of rationale
	Actions      []string `json:"actions"`        // Concrete follow-ups, at most 3
	FetchedAt    string   `json:"fetched_at"`     // When the pipeline first observed the item
}

// Enriched reports whether the item already carries a summary. Enriched items
// are never fetched or summarized again.
func (it *Item) Enriched() bool {
	return it.Summary != ""
}

// SummaryPayload is the structured result of the summarization capability.
type SummaryPayload struct {
	Summary      string   `json:"summary"`
	WhyItMatters string   `json:"why_it_matters"`
	Actions      []string `json:"actions"`
}
