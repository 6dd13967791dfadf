package models

import "time"

// Record is one row of the campaign table. Rate fields are filled by metrics.Derive.
type Record struct {
	Date            time.Time `json:"date"`
	Campaign        string    `json:"campaign"`
	Channel         string    `json:"channel"`
	Budget          int       `json:"budget"`
	Visits          int       `json:"visits"`
	Clicks          int       `json:"clicks"`
	Applications    int       `json:"applications"`
	CreditApprovals int       `json:"credit_approvals"`
	CardApprovals   int       `json:"card_approvals"`
	Churn           int       `json:"churn"`

	ClickRate          Ratio `json:"click_rate"`
	ApplicationRate    Ratio `json:"application_rate"`
	CreditApprovalRate Ratio `json:"credit_approval_rate"`
	CardApprovalRate   Ratio `json:"card_approval_rate"`
	CostPerApproval    Ratio `json:"cost_per_approval"`
}

// Filter selects rows from a table. From and To are inclusive calendar days.
// Empty Channels/Campaigns mean no restriction.
type Filter struct {
	From      time.Time
	To        time.Time
	Channels  []string
	Campaigns []string
}

type KPISet struct {
	TotalApplications    int   `json:"total_applications"`
	TotalCreditApprovals int   `json:"total_credit_approvals"`
	TotalCardApprovals   int   `json:"total_card_approvals"`
	ConversionRate       Ratio `json:"conversion_rate"`
	CardConversionRate   Ratio `json:"card_conversion_rate"`
	AvgCostPerApproval   Ratio `json:"avg_cost_per_approval"`
	ChurnRate            Ratio `json:"churn_rate"`
}

// CampaignFunnel is one funnel row: stage totals for a campaign.
type CampaignFunnel struct {
	Campaign        string `json:"campaign"`
	Visits          int    `json:"visits"`
	Clicks          int    `json:"clicks"`
	Applications    int    `json:"applications"`
	CreditApprovals int    `json:"credit_approvals"`
	CardApprovals   int    `json:"card_approvals"`
}

type DailyApprovals struct {
	Date            string `json:"date"`
	CreditApprovals int    `json:"credit_approvals"`
	CardApprovals   int    `json:"card_approvals"`
}

// CostCell is one heatmap cell. Samples counts the rows with a defined cost per approval.
type CostCell struct {
	Channel            string `json:"channel"`
	Campaign           string `json:"campaign"`
	AvgCostPerApproval Ratio  `json:"avg_cost_per_approval"`
	Samples            int    `json:"samples"`
}

// Dashboard bundles everything a presentation layer needs to redraw after a filter change.
type Dashboard struct {
	KPIs    KPISet           `json:"kpis"`
	Funnel  []CampaignFunnel `json:"funnel"`
	Trend   []DailyApprovals `json:"trend"`
	Heatmap []CostCell       `json:"heatmap"`
	Rows    []Record         `json:"rows"`
}
