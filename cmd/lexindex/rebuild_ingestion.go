package main

import (
	"fmt"

	"github.com/creditguardian/lexindex/application/service"
	"github.com/spf13/cobra"
)

func rebuildIngestionCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "rebuild-ingestion",
		Short: "Rebuild the denormalized ingestion table",
		Long: `Join every article with its current tag assignments and rebuild the
article_ingestion table wholesale. Run after rebuild-tags so the
materialization reflects the latest assignments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), envFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			svc := service.NewIngestion(app.articles, app.tags, app.records, app.logger)
			report, err := svc.Rebuild(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("materialized %d records (%d tagged) in %s\n",
				report.Records(), report.Tagged(), report.Duration().Round(roundTo))
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}
