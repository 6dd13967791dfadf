package metrics

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

// Card is a KPI rendered for display.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Formatter renders KPI values with locale aware number formatting.
type Formatter struct {
	p        *message.Printer
	currency string
}

func NewFormatter(locale, currency string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("metrics: parse locale %q: %w", locale, err)
	}
	return &Formatter{p: message.NewPrinter(tag), currency: currency}, nil
}

func (f *Formatter) Cards(k models.KPISet) []Card {
	return []Card{
		{Label: "Applications", Value: f.p.Sprintf("%d", k.TotalApplications)},
		{Label: "Credit Approvals", Value: f.p.Sprintf("%d", k.TotalCreditApprovals)},
		{Label: "Card Approvals", Value: f.p.Sprintf("%d", k.TotalCardApprovals)},
		{Label: "Conversion Rate", Value: f.Percent(k.ConversionRate)},
		{Label: "Card Conversion Rate", Value: f.Percent(k.CardConversionRate)},
		{Label: "Avg Cost per Approval", Value: f.Money(k.AvgCostPerApproval)},
		{Label: "Churn Rate", Value: f.Percent(k.ChurnRate)},
	}
}

func (f *Formatter) Percent(r models.Ratio) string {
	if !r.Valid {
		return models.NotAvailable
	}
	return f.p.Sprintf("%.1f%%", r.Value)
}

func (f *Formatter) Money(r models.Ratio) string {
	if !r.Valid {
		return models.NotAvailable
	}
	return f.currency + f.p.Sprintf("%.2f", r.Value)
}
