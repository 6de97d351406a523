// Package analyze assigns every collected item to a topic bucket and computes
// its ranking score. Classification is a cheap multi-keyword vote, not ML: it
// must produce the same bucket for the same input on every run.
package analyze

import (
	"sort"
	"strings"

	"agentdigest/internal/core"
	"agentdigest/internal/textutil"
)

// BucketOther is the fallback bucket for items that match no topic.
const BucketOther = "other"

// flagshipMarker earns a score bonus when present in a title.
const flagshipMarker = "erc-8004"

// Topic pairs a bucket name with the trigger phrases that vote for it.
type Topic struct {
	Bucket   string
	Triggers []string
}

// Topics is the canonical topic table. It is an ordered slice, not a map:
// iteration order is the tie-break when two buckets get the same hit count,
// so the first-defined topic wins ties.
var Topics = []Topic{
	{Bucket: "erc8004", Triggers: []string{"erc-8004", "8004", "registry", "reputation", "identity nft", "validation"}},
	{Bucket: "payments", Triggers: []string{"x402", "payment", "micropayment", "stablecoin", "402"}},
	{Bucket: "security", Triggers: []string{"tee", "enclave", "attestation", "hsm", "signing", "key"}},
	{Bucket: "skills", Triggers: []string{"skill", "mcp", "tool", "openclaw", "integration", "agent card"}},
	{Bucket: "market", Triggers: []string{"marketplace", "directory", "indexer", "rank", "score", "discover"}},
	{Bucket: "trading", Triggers: []string{"orderbook", "funding", "perp", "options", "iv", "skew", "vrp", "alpha"}},
}

// Classify assigns a bucket from the title and URL. Trigger phrases are counted
// as substrings of the lowercased "title url" text; the strictly highest hit
// count wins, ties keep the earlier topic, zero hits falls back to "other".
func Classify(title, url string) string {
	text := strings.ToLower(textutil.CollapseWhitespace(title) + " " + url)

	best := BucketOther
	bestHits := 0
	for _, topic := range Topics {
		hits := 0
		for _, trigger := range topic.Triggers {
			if strings.Contains(text, trigger) {
				hits++
			}
		}
		if hits > bestHits {
			best = topic.Bucket
			bestHits = hits
		}
	}
	return best
}

// Score computes the deterministic additive ranking score for an item.
func Score(kind core.Kind, bucket, title string) float64 {
	score := 1.0
	switch kind {
	case core.KindRelease:
		score += 1.5
	case core.KindCommit:
		score += 1.0
	}
	if bucket != BucketOther {
		score += 1.0
	}
	if strings.Contains(strings.ToLower(title), flagshipMarker) {
		score += 0.5
	}
	return score
}

// Analysis is the result of the bucketing and ranking pass.
type Analysis struct {
	Buckets map[string][]*core.Item
	Items   []*core.Item
}

// Analyze classifies and scores every item in place, groups items by bucket,
// and sorts each bucket descending by (score, published). The published string
// is compared lexicographically: ISO-8601-like dates order correctly, mixed
// formats do not. That is an accepted limitation.
func Analyze(items []*core.Item) *Analysis {
	buckets := make(map[string][]*core.Item)
	for _, it := range items {
		it.Bucket = Classify(it.Title, it.URL)
		it.Score = Score(it.Kind, it.Bucket, it.Title)
		buckets[it.Bucket] = append(buckets[it.Bucket], it)
	}

	for _, list := range buckets {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Score != list[j].Score {
				return list[i].Score > list[j].Score
			}
			return list[i].Published > list[j].Published
		})
	}

	return &Analysis{Buckets: buckets, Items: items}
}
