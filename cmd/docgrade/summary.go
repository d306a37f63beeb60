package main

import (
	"github.com/spf13/cobra"

	"github.com/docgrade/docgrade/internal/ledger"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print model rankings across all recorded ledgers",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := ledger.NewStore(cfg.LedgerDir, nil, logger)
	if err != nil {
		return err
	}

	view, err := ledger.NewAggregator(store, logger).Aggregate(cmd.Context())
	if err != nil {
		return err
	}
	if len(view.Sources) == 0 {
		cmd.Println("no ledgers recorded yet")
		return nil
	}

	summary := ledger.SummarizeView(view)
	cmd.Printf("sources: %d   models: %d   runs: %d   total cost: $%.4f\n\n",
		len(view.Sources), summary.ModelCount, summary.TotalRuns, summary.TotalCost)

	cmd.Printf("%-40s %5s %8s %8s %8s %10s\n",
		"model", "runs", "best", "avg", "latest", "cost")
	for _, r := range summary.Rankings {
		cmd.Printf("%-40s %5d %8.4f %8.4f %8.4f %10.4f\n",
			r.Model.String(), r.RunCount, r.BestScore, r.AverageScore, r.LatestScore, r.TotalCost)
	}
	return nil
}
