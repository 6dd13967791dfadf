package metrics

import "github.com/AngelCh415/campaign-analytics/internal/models"

// ComputeKPIs aggregates the dashboard KPI cards over rows.
func ComputeKPIs(rows []models.Record) models.KPISet {
	var k models.KPISet
	var visits, churn int
	var costSum float64
	var costN int
	for _, r := range rows {
		k.TotalApplications += r.Applications
		k.TotalCreditApprovals += r.CreditApprovals
		k.TotalCardApprovals += r.CardApprovals
		visits += r.Visits
		churn += r.Churn
		if r.CostPerApproval.Valid {
			costSum += r.CostPerApproval.Value
			costN++
		}
	}
	k.ConversionRate = models.Percent(float64(k.TotalCreditApprovals), float64(visits))
	k.CardConversionRate = models.Percent(float64(k.TotalCardApprovals), float64(visits))
	k.AvgCostPerApproval = models.Div(costSum, float64(costN))
	k.ChurnRate = models.Percent(float64(churn), float64(k.TotalCreditApprovals))
	return k
}
