// Package handlers wires the CLI commands.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agentdigest/internal/config"
)

var cfgFile string

// loadedConfig is populated by initConfig before any command runs.
var loadedConfig *config.Config

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agentdigest",
		Short: "Weekly digest pipeline for agent-ecosystem news",
		Long: `agentdigest collects items from feeds and GitHub activity, deduplicates
them against a durable seen-ledger, classifies them into topic buckets,
enriches each new item once with extracted text and an LLM summary, and
renders a weekly markdown digest.

Examples:
  # Run the full weekly pipeline
  agentdigest run

  # Preview bucket assignments without enrichment or state changes
  agentdigest classify

  # Inspect the enrichment cache
  agentdigest cache stats`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .agentdigest.yaml)")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewClassifyCmd())
	rootCmd.AddCommand(NewCacheCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads the config file and environment variables.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	loadedConfig = cfg
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
