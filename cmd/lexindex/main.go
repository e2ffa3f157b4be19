// Package main is the entry point for the lexindex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/creditguardian/lexindex/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexindex",
		Short: "Legal article tagging and semantic retrieval",
		Long: `lexindex tags legal articles against a keyword taxonomy, materializes
a denormalized ingestion view, generates embeddings for changed content
and answers similarity queries over the stored vectors.`,
	}

	cmd.AddCommand(rebuildTagsCmd())
	cmd.AddCommand(rebuildIngestionCmd())
	cmd.AddCommand(embedCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(searchCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
