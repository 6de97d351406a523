package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"agentdigest/internal/collect"
	"agentdigest/internal/fetch"
	"agentdigest/internal/llm"
	"agentdigest/internal/logger"
	"agentdigest/internal/pipeline"
	"agentdigest/internal/sources"
	"agentdigest/internal/state"
	"agentdigest/internal/store"
	"agentdigest/internal/summarize"
)

// NewRunCmd creates the run command: one full pipeline execution.
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Collect, enrich, and render the weekly digest",
		Long: `Executes one digest run. A run either completes and prints the digest
path, reports that there were no new items, or aborts with a hard failure
before producing a digest. There is no partial-digest mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadedConfig
			ctx := cmd.Context()

			srcs, err := sources.Load(cfg.SourcesFile)
			if err != nil {
				return err
			}

			itemStore, err := store.NewStore(cfg.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = itemStore.Close() }()

			// Missing credentials fail here, before any network work.
			client, err := llm.NewClient(ctx, cfg.Gemini.Model)
			if err != nil {
				return err
			}

			st, err := state.Load(cfg.StatePath())
			if err != nil {
				return err
			}

			extractor := fetch.NewExtractor()
			result, err := pipeline.Run(ctx, st, pipeline.Options{
				Collectors: collect.FromSources(srcs, cfg.GitHub.Token),
				Store:      itemStore,
				Summarizer: summarize.NewGeminiSummarizer(client),
				Extract:    extractor.ExtractText,
				OutputDir:  cfg.OutputDir,
			})
			if err != nil {
				// Ledger is deliberately not saved on failure: the failed
				// run's items stay unseen and are retried next run.
				logger.Error("Run aborted", err)
				return err
			}

			if err := state.Save(cfg.StatePath(), st); err != nil {
				return err
			}

			if result.NewItems == 0 {
				fmt.Println("No new items found.")
				return nil
			}
			fmt.Printf("Digest updated: %s\n", result.DigestPath)
			return nil
		},
	}
}
