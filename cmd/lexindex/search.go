package main

import (
	"fmt"
	"strings"

	"github.com/creditguardian/lexindex/application/service"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var (
		envFile       string
		limit         int
		minSimilarity float64
		documentID    int64
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find articles semantically similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			app, err := newApp(cmd.Context(), envFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			embedder, err := app.embedder()
			if err != nil {
				return err
			}

			svc := service.NewSearch(embedder, app.embeddings, app.records, app.cfg, app.logger)

			opts := []service.SearchOption{}
			if limit > 0 {
				opts = append(opts, service.WithLimit(limit))
			}
			if minSimilarity > 0 {
				opts = append(opts, service.WithMinSimilarity(minSimilarity))
			}
			if documentID != 0 {
				opts = append(opts, service.WithDocument(documentID))
			}

			report, err := svc.ByText(cmd.Context(), query, opts...)
			if err != nil {
				return err
			}

			if !report.Indexed() {
				fmt.Println("no embeddings indexed yet; run `lexindex embed` first")
				return nil
			}
			if report.Count() == 0 {
				fmt.Println("no matches")
				return nil
			}

			for i, r := range report.Results() {
				fmt.Printf("%2d. [%.4f] %s (article %d)\n", i+1, r.Similarity(), r.ArticleNumber(), r.ArticleID())
				if r.ChapterTitle() != "" {
					fmt.Printf("    %s", r.ChapterTitle())
					if r.SectionTitle() != "" {
						fmt.Printf(" / %s", r.SectionTitle())
					}
					fmt.Println()
				}
				if r.PrimaryTag() != "" {
					names := make([]string, 0, len(r.Tags()))
					for _, t := range r.Tags() {
						names = append(names, t.Tag)
					}
					fmt.Printf("    tags: %s\n", strings.Join(names, ", "))
				}
				fmt.Printf("    %s\n", strings.ReplaceAll(r.Preview(), "\n", " "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")
	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0, "Minimum cosine similarity")
	cmd.Flags().Int64Var(&documentID, "document", 0, "Restrict search to one document")

	return cmd
}
