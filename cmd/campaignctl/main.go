package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/campaign-analytics/internal/app"
	"github.com/AngelCh415/campaign-analytics/internal/config"
	"github.com/AngelCh415/campaign-analytics/internal/metrics"
	"github.com/AngelCh415/campaign-analytics/internal/models"
)

var rootFlags struct {
	seed      int64
	from      string
	to        string
	channels  []string
	campaigns []string
}

var rootCmd = &cobra.Command{
	Use:           "campaignctl",
	Short:         "Inspect and export the synthetic credit-campaign dataset",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&rootFlags.seed, "seed", 0, "Dataset seed (defaults to DATASET_SEED)")
	pf.StringVar(&rootFlags.from, "from", "", "First day, YYYY-MM-DD (defaults to the dataset start)")
	pf.StringVar(&rootFlags.to, "to", "", "Last day, YYYY-MM-DD (defaults to the dataset end)")
	pf.StringSliceVar(&rootFlags.channels, "channel", nil, "Channels to keep (repeatable or comma separated)")
	pf.StringSliceVar(&rootFlags.campaigns, "campaign", nil, "Campaigns to keep (repeatable or comma separated)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadService builds the base table the same way the server does.
func loadService(cmd *cobra.Command) (*metrics.Service, config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, cfg, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = rootFlags.seed
	}
	st, err := app.BuildTable(cfg, app.NewLogger(cmd.ErrOrStderr(), cfg))
	if err != nil {
		return nil, cfg, err
	}
	return metrics.NewService(st, nil), cfg, nil
}

func parseFilter() (models.Filter, error) {
	f := models.Filter{
		Channels:  metrics.CSVSet(rootFlags.channels...),
		Campaigns: metrics.CSVSet(rootFlags.campaigns...),
	}
	var err error
	if rootFlags.from != "" {
		if f.From, err = time.Parse("2006-01-02", rootFlags.from); err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
	}
	if rootFlags.to != "" {
		if f.To, err = time.Parse("2006-01-02", rootFlags.to); err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
	}
	return f, nil
}
