package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/creditguardian/lexindex/application/service"
	"github.com/spf13/cobra"
)

const roundTo = 10 * time.Millisecond

func embedCmd() *cobra.Command {
	var (
		envFile   string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Generate embeddings for new or changed articles",
		Long: `Embed every materialized article whose stored vector is missing or
stale. Articles whose content hash matches the stored one are skipped, so
running this repeatedly over an unchanged corpus is free.

Environment variables:
  LEXINDEX_DB_URL                      Database URL
  LEXINDEX_EMBEDDING_BASE_URL          OpenAI-compatible API base URL
  LEXINDEX_EMBEDDING_API_KEY           API key (required)
  LEXINDEX_EMBEDDING_MODEL             Model identifier (default: text-embedding-3-small)
  LEXINDEX_EMBEDDING_DIMENSION         Expected vector length (default: 1536)
  LEXINDEX_BATCH_SIZE                  Texts per API call (default: 50)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), envFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			embedder, err := app.embedder()
			if err != nil {
				return err
			}
			if err := embedder.Ping(cmd.Context()); err != nil {
				return err
			}

			size := batchSize
			if size <= 0 {
				size = app.cfg.BatchSize()
			}

			svc := service.NewEmbedding(app.records, app.embeddings, embedder, size, app.cfg.WorkerCount(), app.logger)
			report, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("embedded %d of %d pending articles (%d failed, %d total) in %s\n",
				report.Embedded(), report.Pending(), report.Failed(), report.Articles(),
				report.Duration().Round(roundTo))
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Texts per embedding API call")

	return cmd
}

func statsCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show embedding index coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), envFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			embedder, err := app.embedder()
			if err != nil {
				return err
			}

			svc := service.NewEmbedding(app.records, app.embeddings, embedder, app.cfg.BatchSize(), app.cfg.WorkerCount(), app.logger)
			stats, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("articles:  %d\n", stats.Articles())
			fmt.Printf("embedded:  %d\n", stats.Embedded())
			fmt.Printf("missing:   %d\n", stats.Missing())
			fmt.Printf("stale:     %d\n", stats.Stale())

			byModel := stats.ByModel()
			if len(byModel) > 0 {
				models := make([]string, 0, len(byModel))
				for model := range byModel {
					models = append(models, model)
				}
				sort.Strings(models)
				fmt.Println("vectors by model:")
				for _, model := range models {
					fmt.Printf("  %s: %d\n", model, byModel[model])
				}
			}

			byDocument := stats.ByDocument()
			if len(byDocument) > 0 {
				docs := make([]int64, 0, len(byDocument))
				for doc := range byDocument {
					docs = append(docs, doc)
				}
				sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
				fmt.Println("vectors by document:")
				for _, doc := range docs {
					fmt.Printf("  %d: %d\n", doc, byDocument[doc])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}
