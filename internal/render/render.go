// Package render produces the weekly markdown digest and the latest pointer.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agentdigest/internal/analyze"
	"agentdigest/internal/core"
)

// MaxItemsPerBucket caps how many items one bucket section renders.
const MaxItemsPerBucket = 8

// MaxActions caps the follow-ups sub-list per item.
const MaxActions = 3

// BucketOrder is the fixed display order of digest sections. It is neither
// alphabetical nor score-derived.
var BucketOrder = []string{"erc8004", "market", "skills", "payments", "security", "trading", "other"}

// WeekPath returns the digest path for the ISO week containing now, e.g.
// <outputDir>/2026/2026-W35.md.
func WeekPath(outputDir string, now time.Time) string {
	year, week := now.UTC().ISOWeek()
	return filepath.Join(outputDir, fmt.Sprintf("%d", year), fmt.Sprintf("%d-W%02d.md", year, week))
}

// mdEscape flattens a string for inline markdown use.
func mdEscape(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// RenderDigest writes the weekly digest document for the analysis and updates
// the latest pointer. It returns the digest path.
func RenderDigest(outputDir string, a *analyze.Analysis, now time.Time) (string, error) {
	path := WeekPath(outputDir, now)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create digest directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".md")
	content := Document(stem, a)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write digest file %s: %w", path, err)
	}

	if err := writeLatestPointer(outputDir, path, stem); err != nil {
		return "", err
	}
	return path, nil
}

// Document renders the digest markdown for an analysis.
func Document(stem string, a *analyze.Analysis) string {
	total := len(a.Items)
	included := 0
	for _, list := range a.Buckets {
		included += min(len(list), MaxItemsPerBucket)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Weekly Agent Digest — %s\n\n", stem))
	b.WriteString(fmt.Sprintf("**Scorecard:** New items: %d | Included: %d | Clusters: %d\n\n", total, included, len(a.Buckets)))

	for _, bucket := range BucketOrder {
		list := a.Buckets[bucket]
		if len(list) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("## %s\n\n", strings.ToUpper(bucket)))
		for _, item := range list[:min(len(list), MaxItemsPerBucket)] {
			writeItem(&b, item)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// writeItem renders one digest entry: title link, optional summary and
// why-it-matters bullets, and at most MaxActions follow-ups.
func writeItem(b *strings.Builder, item *core.Item) {
	title := mdEscape(item.Title)
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(fmt.Sprintf("### [%s](%s)\n", title, item.URL))

	if summary := mdEscape(item.Summary); summary != "" {
		b.WriteString(fmt.Sprintf("- **Summary:** %s\n", summary))
	}
	if why := mdEscape(item.WhyItMatters); why != "" {
		b.WriteString(fmt.Sprintf("- **Why it matters:** %s\n", why))
	}
	if len(item.Actions) > 0 {
		b.WriteString("- **Follow-ups:**\n")
		actions := item.Actions
		if len(actions) > MaxActions {
			actions = actions[:MaxActions]
		}
		for _, action := range actions {
			b.WriteString(fmt.Sprintf("  - %s\n", mdEscape(action)))
		}
	}
	b.WriteString("\n")
}

// writeLatestPointer overwrites <outputDir>/README.md to point at the most
// recent digest.
func writeLatestPointer(outputDir, digestPath, stem string) error {
	rel, err := filepath.Rel(outputDir, digestPath)
	if err != nil {
		return fmt.Errorf("failed to resolve digest path: %w", err)
	}

	content := fmt.Sprintf("Latest: [%s](%s)\n", stem, filepath.ToSlash(rel))
	readmePath := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(readmePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write latest pointer %s: %w", readmePath, err)
	}
	return nil
}
