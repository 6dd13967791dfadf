package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

// Header is the column order of every row export.
var Header = []string{
	"date", "campaign", "channel", "budget", "visits", "clicks", "applications",
	"credit_approvals", "card_approvals", "churn",
	"click_rate", "application_rate", "credit_approval_rate", "card_approval_rate", "cost_per_approval",
}

// Row flattens a record in Header order. Undefined ratios become "N/A".
func Row(r models.Record) []string {
	return []string{
		r.Date.Format("2006-01-02"),
		r.Campaign,
		r.Channel,
		strconv.Itoa(r.Budget),
		strconv.Itoa(r.Visits),
		strconv.Itoa(r.Clicks),
		strconv.Itoa(r.Applications),
		strconv.Itoa(r.CreditApprovals),
		strconv.Itoa(r.CardApprovals),
		strconv.Itoa(r.Churn),
		formatRatio(r.ClickRate, 4),
		formatRatio(r.ApplicationRate, 4),
		formatRatio(r.CreditApprovalRate, 4),
		formatRatio(r.CardApprovalRate, 4),
		formatRatio(r.CostPerApproval, 2),
	}
}

func WriteCSV(w io.Writer, rows []models.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(Row(r)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatRatio(r models.Ratio, decimals int) string {
	if !r.Valid {
		return models.NotAvailable
	}
	return strconv.FormatFloat(r.Value, 'f', decimals, 64)
}
