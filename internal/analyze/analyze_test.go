package analyze

import (
	"testing"

	"agentdigest/internal/core"
)

func TestClassify_Deterministic(t *testing.T) {
	title := "ERC-8004 registry update"
	url := "https://example.com/post"

	first := Classify(title, url)
	for i := 0; i < 10; i++ {
		if got := Classify(title, url); got != first {
			t.Fatalf("Classification changed between calls: %s vs %s", first, got)
		}
	}
	if first != "erc8004" {
		t.Errorf("Expected erc8004, got %s", first)
	}
}

func TestClassify_MostHitsWins(t *testing.T) {
	// Two payments triggers (x402, stablecoin) against one security trigger
	// (signing).
	bucket := Classify("x402 stablecoin signing flow", "https://example.com")
	if bucket != "payments" {
		t.Errorf("Expected payments to win 2-vs-1, got %s", bucket)
	}
}

func TestClassify_TieKeepsFirstDefinedBucket(t *testing.T) {
	// One erc8004 trigger (registry) against one payments trigger (payment):
	// erc8004 is defined earlier in the topic table.
	bucket := Classify("registry payment", "https://example.com")
	if bucket != "erc8004" {
		t.Errorf("Expected first-defined bucket to win the tie, got %s", bucket)
	}
}

func TestClassify_NoHitsFallsBackToOther(t *testing.T) {
	if bucket := Classify("hello world", "https://example.com/misc"); bucket != BucketOther {
		t.Errorf("Expected fallback bucket, got %s", bucket)
	}
}

func TestClassify_URLContributes(t *testing.T) {
	bucket := Classify("weekly notes", "https://example.com/erc-8004-registry")
	if bucket != "erc8004" {
		t.Errorf("Expected URL text to count toward classification, got %s", bucket)
	}
}

func TestClassify_NormalizesTitleWhitespace(t *testing.T) {
	spread := Classify("identity\n\n  nft", "https://example.com")
	if spread != "erc8004" {
		t.Errorf("Expected multi-word trigger to match across collapsed whitespace, got %s", spread)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		kind     core.Kind
		bucket   string
		title    string
		expected float64
	}{
		{"release in non-other bucket with flagship marker", core.KindRelease, "erc8004", "ERC-8004 v2 released", 4.0},
		{"plain article in other", core.KindArticle, "other", "hello world", 1.0},
		{"commit in non-other bucket", core.KindCommit, "skills", "add mcp tool", 3.0},
		{"article in non-other bucket", core.KindArticle, "payments", "x402 deep dive", 2.0},
		{"marker is case-insensitive", core.KindArticle, "other", "erc-8004 mentioned", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.kind, tt.bucket, tt.title); got != tt.expected {
				t.Errorf("Score(%s, %s, %q) = %v, want %v", tt.kind, tt.bucket, tt.title, got, tt.expected)
			}
		})
	}
}

func TestAnalyze_SortsByScoreDescending(t *testing.T) {
	items := []*core.Item{
		{Title: "registry one", URL: "u1", Kind: core.KindArticle, Published: "2026-01-01"},
		{Title: "registry reputation validation identity nft", URL: "u2", Kind: core.KindRelease, Published: "2026-01-01"},
		{Title: "registry two words", URL: "u3", Kind: core.KindCommit, Published: "2026-01-01"},
	}

	analysis := Analyze(items)

	list := analysis.Buckets["erc8004"]
	if len(list) != 3 {
		t.Fatalf("Expected 3 items in erc8004, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Score < list[i].Score {
			t.Errorf("Bucket not sorted descending by score: %v before %v", list[i-1].Score, list[i].Score)
		}
	}
}

func TestAnalyze_PublishedBreaksScoreTies(t *testing.T) {
	items := []*core.Item{
		{Title: "registry a", URL: "u1", Kind: core.KindArticle, Published: "2026-01-01T00:00:00Z"},
		{Title: "registry b", URL: "u2", Kind: core.KindArticle, Published: "2026-02-01T00:00:00Z"},
	}

	analysis := Analyze(items)

	list := analysis.Buckets["erc8004"]
	if list[0].Published != "2026-02-01T00:00:00Z" {
		t.Errorf("Expected later published string first on score tie, got %s", list[0].Published)
	}
}

func TestAnalyze_AssignsBucketAndScoreInPlace(t *testing.T) {
	item := &core.Item{Title: "hello world", URL: "https://example.com", Kind: core.KindArticle}

	Analyze([]*core.Item{item})

	if item.Bucket != BucketOther {
		t.Errorf("Expected bucket assigned in place, got %q", item.Bucket)
	}
	if item.Score != 1.0 {
		t.Errorf("Expected score assigned in place, got %v", item.Score)
	}
}

func TestAnalyze_BucketIsNeverEmpty(t *testing.T) {
	items := []*core.Item{
		{Title: "", URL: "", Kind: core.KindArticle},
		{Title: "perp funding skew", URL: "https://example.com", Kind: core.KindArticle},
	}

	Analyze(items)

	for _, item := range items {
		if item.Bucket == "" {
			t.Errorf("Item %q has empty bucket", item.Title)
		}
	}
}
