package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/campaign-analytics/internal/metrics"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Print KPI cards and the campaign funnel for a filter",
	Args:  cobra.NoArgs,
	RunE:  runKPIs,
}

func init() {
	rootCmd.AddCommand(kpisCmd)
}

func runKPIs(cmd *cobra.Command, args []string) error {
	f, err := parseFilter()
	if err != nil {
		return err
	}
	svc, cfg, err := loadService(cmd)
	if err != nil {
		return err
	}
	fmtr, err := metrics.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return err
	}
	d := svc.Apply(f)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, c := range fmtr.Cards(d.KPIs) {
		fmt.Fprintf(tw, "%s\t%s\n", c.Label, c.Value)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CAMPAIGN\tVISITS\tCLICKS\tAPPLICATIONS\tCREDIT\tCARD")
	for _, g := range d.Funnel {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", g.Campaign, g.Visits, g.Clicks, g.Applications, g.CreditApprovals, g.CardApprovals)
	}
	return tw.Flush()
}
