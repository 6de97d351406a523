// Package sources loads the source list that drives collection.
package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source types understood by the collector builder.
const (
	TypeRSS            = "rss"
	TypeGitHubReleases = "github_releases"
	TypeGitHubCommits  = "github_commits"
)

// Source describes one place to collect items from.
type Source struct {
	Type   string `yaml:"type"`
	URL    string `yaml:"url,omitempty"`    // rss
	Repo   string `yaml:"repo,omitempty"`   // github_releases, github_commits
	Branch string `yaml:"branch,omitempty"` // github_commits, defaults to main
}

// File is the on-disk shape of sources.yaml.
type File struct {
	Sources []Source `yaml:"sources"`
}

// Load reads and validates the source list from path.
func Load(path string) ([]Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}

	for i, src := range file.Sources {
		switch src.Type {
		case TypeRSS:
			if src.URL == "" {
				return nil, fmt.Errorf("source %d: rss source requires url", i)
			}
		case TypeGitHubReleases, TypeGitHubCommits:
			if src.Repo == "" {
				return nil, fmt.Errorf("source %d: %s source requires repo", i, src.Type)
			}
		default:
			return nil, fmt.Errorf("source %d: unknown source type %q", i, src.Type)
		}
	}

	return file.Sources, nil
}
