// Package collect pulls raw items from the configured sources. Collection is
// fail-soft: one broken source never aborts the run, it only loses that
// source's contribution.
package collect

import (
	"context"
	"net/http"
	"time"

	"agentdigest/internal/core"
	"agentdigest/internal/logger"
	"agentdigest/internal/sources"
)

// Collector pulls raw items from a single source.
type Collector interface {
	// Source returns the origin identifier stamped onto collected items.
	Source() string
	// Collect returns the source's current items. Items carry at least
	// id, source, title, url, published, and kind.
	Collect(ctx context.Context) ([]core.Item, error)
}

// defaultTimeout bounds every collector network call.
const defaultTimeout = 30 * time.Second

// newHTTPClient returns the client shared by network-backed collectors.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// FromSources builds the collector set for a source list. The GitHub token is
// optional; without it the API's anonymous rate limits apply.
func FromSources(srcs []sources.Source, githubToken string) []Collector {
	client := newHTTPClient()

	var collectors []Collector
	for _, src := range srcs {
		switch src.Type {
		case sources.TypeRSS:
			collectors = append(collectors, NewFeedCollector(src.URL))
		case sources.TypeGitHubReleases:
			collectors = append(collectors, NewReleasesCollector(src.Repo, githubToken, client))
		case sources.TypeGitHubCommits:
			branch := src.Branch
			if branch == "" {
				branch = "main"
			}
			collectors = append(collectors, NewCommitsCollector(src.Repo, branch, githubToken, client))
		}
	}
	return collectors
}

// All runs every collector and concatenates their items. Per-source failures
// are logged and skipped.
func All(ctx context.Context, collectors []Collector) []core.Item {
	var items []core.Item
	for _, c := range collectors {
		collected, err := c.Collect(ctx)
		if err != nil {
			logger.Warn("Source collection failed, skipping", "source", c.Source(), "error", err.Error())
			continue
		}
		logger.Debug("Collected source", "source", c.Source(), "items", len(collected))
		items = append(items, collected...)
	}
	return items
}
