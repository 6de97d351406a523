package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"agentdigest/internal/analyze"
	"agentdigest/internal/collect"
	"agentdigest/internal/core"
	"agentdigest/internal/render"
	"agentdigest/internal/sources"
)

// NewClassifyCmd creates the classify command: a dry run that collects the
// configured sources and prints bucket assignments and scores without touching
// the seen-ledger, the store, or the summarizer.
func NewClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Preview bucket assignments and scores for current source items",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadedConfig

			srcs, err := sources.Load(cfg.SourcesFile)
			if err != nil {
				return err
			}

			items := collect.All(cmd.Context(), collect.FromSources(srcs, cfg.GitHub.Token))
			if len(items) == 0 {
				fmt.Println("No items collected.")
				return nil
			}

			refs := make([]*core.Item, len(items))
			for i := range items {
				refs[i] = &items[i]
			}
			analysis := analyze.Analyze(refs)

			for _, bucket := range render.BucketOrder {
				list := analysis.Buckets[bucket]
				if len(list) == 0 {
					continue
				}
				fmt.Printf("%s (%d items)\n", bucket, len(list))
				for _, item := range list {
					fmt.Printf("  %.1f  [%s] %s\n", item.Score, item.Kind, item.Title)
				}
			}
			return nil
		},
	}
}
