package metrics

import "github.com/AngelCh415/campaign-analytics/internal/models"

// Derive returns a copy of rows with the rate and cost columns computed from the raw counters.
func Derive(rows []models.Record) []models.Record {
	out := make([]models.Record, len(rows))
	for i, r := range rows {
		r.ClickRate = models.Div(float64(r.Clicks), float64(r.Visits))
		r.ApplicationRate = models.Div(float64(r.Applications), float64(r.Clicks))
		r.CreditApprovalRate = models.Div(float64(r.CreditApprovals), float64(r.Applications))
		r.CardApprovalRate = models.Div(float64(r.CardApprovals), float64(r.CreditApprovals))
		r.CostPerApproval = models.Div(float64(r.Budget), float64(r.CreditApprovals))
		out[i] = r
	}
	return out
}
