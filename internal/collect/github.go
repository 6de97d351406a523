package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"agentdigest/internal/core"
	"agentdigest/internal/identity"
	"agentdigest/internal/textutil"
)

// DefaultAPIBase is the public GitHub API endpoint.
const DefaultAPIBase = "https://api.github.com"

// maxEntries caps how many releases/commits one collection pulls.
const maxEntries = 30

// commitTitleLimit bounds commit subjects used as item titles.
const commitTitleLimit = 180

// githubClient is the shared plumbing for the GitHub-backed collectors.
type githubClient struct {
	apiBase string
	token   string
	client  *http.Client
}

func (g *githubClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u := g.apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

// ReleasesCollector pulls the latest releases of a repository.
type ReleasesCollector struct {
	repo string
	gh   githubClient
}

// NewReleasesCollector creates a releases collector for owner/repo.
func NewReleasesCollector(repo, token string, client *http.Client) *ReleasesCollector {
	return &ReleasesCollector{
		repo: repo,
		gh:   githubClient{apiBase: DefaultAPIBase, token: token, client: client},
	}
}

// Source returns the collector's origin identifier.
func (c *ReleasesCollector) Source() string {
	return fmt.Sprintf("github:%s:releases", c.repo)
}

type githubRelease struct {
	HTMLURL     string `json:"html_url"`
	Name        string `json:"name"`
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
}

// Collect fetches the repository's releases, newest first.
func (c *ReleasesCollector) Collect(ctx context.Context) ([]core.Item, error) {
	var releases []githubRelease
	if err := c.gh.get(ctx, "/repos/"+c.repo+"/releases", nil, &releases); err != nil {
		return nil, err
	}
	if len(releases) > maxEntries {
		releases = releases[:maxEntries]
	}

	var items []core.Item
	for _, rel := range releases {
		if rel.HTMLURL == "" {
			continue
		}
		title := rel.Name
		if title == "" {
			title = rel.TagName
		}
		if title == "" {
			title = "release"
		}
		items = append(items, core.Item{
			ID:        identity.Identify(rel.HTMLURL),
			Source:    c.Source(),
			Title:     textutil.CollapseWhitespace(title),
			URL:       rel.HTMLURL,
			Published: rel.PublishedAt,
			Kind:      core.KindRelease,
		})
	}
	return items, nil
}

// CommitsCollector pulls recent commits from a repository branch.
type CommitsCollector struct {
	repo   string
	branch string
	gh     githubClient
}

// NewCommitsCollector creates a commits collector for owner/repo on branch.
func NewCommitsCollector(repo, branch, token string, client *http.Client) *CommitsCollector {
	return &CommitsCollector{
		repo:   repo,
		branch: branch,
		gh:     githubClient{apiBase: DefaultAPIBase, token: token, client: client},
	}
}

// Source returns the collector's origin identifier.
func (c *CommitsCollector) Source() string {
	return fmt.Sprintf("github:%s:commits", c.repo)
}

type githubCommit struct {
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// Collect fetches the branch's most recent commits. The item title is the
// commit subject line, clamped.
func (c *CommitsCollector) Collect(ctx context.Context) ([]core.Item, error) {
	query := url.Values{}
	query.Set("sha", c.branch)
	query.Set("per_page", fmt.Sprintf("%d", maxEntries))

	var commits []githubCommit
	if err := c.gh.get(ctx, "/repos/"+c.repo+"/commits", query, &commits); err != nil {
		return nil, err
	}

	var items []core.Item
	for _, commit := range commits {
		if commit.HTMLURL == "" {
			continue
		}
		subject, _, _ := strings.Cut(commit.Commit.Message, "\n")
		items = append(items, core.Item{
			ID:        identity.Identify(commit.HTMLURL),
			Source:    c.Source(),
			Title:     textutil.Prefix(textutil.CollapseWhitespace(subject), commitTitleLimit),
			URL:       commit.HTMLURL,
			Published: commit.Commit.Author.Date,
			Kind:      core.KindCommit,
		})
	}
	return items, nil
}
