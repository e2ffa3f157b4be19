package main

import (
	"fmt"

	"github.com/creditguardian/lexindex/application/service"
	"github.com/creditguardian/lexindex/domain/tagging"
	"github.com/spf13/cobra"
)

func rebuildTagsCmd() *cobra.Command {
	var (
		envFile string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "rebuild-tags",
		Short: "Rebuild all tag assignments from the article corpus",
		Long: `Score every stored article against the keyword taxonomy and replace
the whole tag assignment table. Scores use corpus-wide statistics, so the
rebuild is always complete, never incremental.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), envFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			taxonomy, err := app.taxonomy()
			if err != nil {
				return err
			}

			scorer := tagging.NewScorer(taxonomy)
			if workers > 0 {
				scorer = scorer.WithWorkers(workers)
			} else if app.cfg.WorkerCount() > 0 {
				scorer = scorer.WithWorkers(app.cfg.WorkerCount())
			}

			svc := service.NewTagging(app.articles, app.tags, scorer, app.logger)
			report, err := svc.Rebuild(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("tagged %d of %d articles (%d assignments) in %s\n",
				report.Tagged(), report.Articles(), report.Assignments(), report.Duration().Round(roundTo))
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Tokenization goroutines (default: number of CPUs)")

	return cmd
}
