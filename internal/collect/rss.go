package collect

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"agentdigest/internal/core"
	"agentdigest/internal/identity"
	"agentdigest/internal/textutil"
)

// FeedCollector pulls articles from an RSS or Atom feed.
type FeedCollector struct {
	url    string
	parser *gofeed.Parser
}

// NewFeedCollector creates a collector for the given feed URL.
func NewFeedCollector(url string) *FeedCollector {
	parser := gofeed.NewParser()
	parser.UserAgent = "agentdigest/1.0 (+https://github.com)"
	return &FeedCollector{url: url, parser: parser}
}

// Source returns the feed URL.
func (c *FeedCollector) Source() string {
	return c.url
}

// Collect fetches and parses the feed. Entries without a link are skipped.
// The published field keeps the feed's raw date string.
func (c *FeedCollector) Collect(ctx context.Context) ([]core.Item, error) {
	feed, err := c.parser.ParseURLWithContext(c.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", c.url, err)
	}

	var items []core.Item
	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}
		published := entry.Published
		if published == "" {
			published = entry.Updated
		}
		items = append(items, core.Item{
			ID:        identity.Identify(entry.Link),
			Source:    c.url,
			Title:     textutil.CollapseWhitespace(entry.Title),
			URL:       entry.Link,
			Published: published,
			Kind:      core.KindArticle,
		})
	}
	return items, nil
}
