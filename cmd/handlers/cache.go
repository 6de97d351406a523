package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"agentdigest/internal/store"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the enrichment cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show item counts and cache size",
		RunE: func(cmd *cobra.Command, args []string) error {
			itemStore, err := store.NewStore(loadedConfig.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = itemStore.Close() }()

			stats, err := itemStore.GetStats()
			if err != nil {
				return err
			}

			fmt.Printf("Items:    %d\n", stats.ItemCount)
			fmt.Printf("Enriched: %d\n", stats.EnrichedCount)
			fmt.Printf("Size:     %d bytes\n", stats.Size)
			if !stats.LastUpdated.IsZero() {
				fmt.Printf("Updated:  %s\n", stats.LastUpdated.UTC().Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	})

	return cacheCmd
}
