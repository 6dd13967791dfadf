// Package dataset builds the synthetic credit-campaign table the dashboard runs on.
package dataset

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

var (
	DefaultCampaigns = []string{"Promoção A", "Promoção B", "Promoção C", "Promoção D"}
	DefaultChannels  = []string{"Email", "Redes Sociais", "TV", "Google Ads"}
)

// Range is a half-open integer interval [Min, Max).
type Range struct{ Min, Max int }

func (r Range) sample(rng *rand.Rand) int { return r.Min + rng.Intn(r.Max-r.Min) }

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v int) bool { return v >= r.Min && v < r.Max }

// Column ranges of the raw counters.
var (
	BudgetRange          = Range{1000, 5000}
	VisitsRange          = Range{500, 5000}
	ClicksRange          = Range{100, 2000}
	ApplicationsRange    = Range{50, 1000}
	CreditApprovalsRange = Range{10, 500}
	CardApprovalsRange   = Range{5, 300}
	ChurnRange           = Range{5, 200}
)

type Config struct {
	Seed      int64
	Rows      int
	Days      int
	Start     time.Time
	Campaigns []string
	Channels  []string
	// ClampCards caps card approvals at the row's credit approvals.
	ClampCards bool
}

func DefaultConfig() Config {
	return Config{
		Seed:       42,
		Rows:       1000,
		Days:       100,
		Start:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Campaigns:  DefaultCampaigns,
		Channels:   DefaultChannels,
		ClampCards: true,
	}
}

func (c Config) Validate() error {
	if c.Rows <= 0 {
		return errors.New("dataset: rows must be > 0")
	}
	if c.Days <= 0 {
		return errors.New("dataset: days must be > 0")
	}
	if len(c.Campaigns) == 0 || len(c.Channels) == 0 {
		return errors.New("dataset: campaigns and channels required")
	}
	return nil
}

// End is the last calendar day of the window.
func (c Config) End() time.Time { return c.Start.AddDate(0, 0, c.Days-1) }

// Generate draws cfg.Rows records, each column sampled uniformly and independently,
// then sorts them by date. The same Config always yields the same rows.
// Invalid configs fall back to the default for the offending field.
func Generate(cfg Config) []models.Record {
	def := DefaultConfig()
	if cfg.Rows <= 0 {
		cfg.Rows = def.Rows
	}
	if cfg.Days <= 0 {
		cfg.Days = def.Days
	}
	if len(cfg.Campaigns) == 0 {
		cfg.Campaigns = def.Campaigns
	}
	if len(cfg.Channels) == 0 {
		cfg.Channels = def.Channels
	}
	if cfg.Start.IsZero() {
		cfg.Start = def.Start
	}
	start := time.Date(cfg.Start.Year(), cfg.Start.Month(), cfg.Start.Day(), 0, 0, 0, 0, time.UTC)

	rng := rand.New(rand.NewSource(cfg.Seed))
	rows := make([]models.Record, cfg.Rows)

	// column by column so a given seed fixes each column independently
	for i := range rows {
		rows[i].Date = start.AddDate(0, 0, rng.Intn(cfg.Days))
	}
	for i := range rows {
		rows[i].Campaign = cfg.Campaigns[rng.Intn(len(cfg.Campaigns))]
	}
	for i := range rows {
		rows[i].Channel = cfg.Channels[rng.Intn(len(cfg.Channels))]
	}
	fill := func(r Range, set func(*models.Record, int)) {
		for i := range rows {
			set(&rows[i], r.sample(rng))
		}
	}
	fill(BudgetRange, func(m *models.Record, v int) { m.Budget = v })
	fill(VisitsRange, func(m *models.Record, v int) { m.Visits = v })
	fill(ClicksRange, func(m *models.Record, v int) { m.Clicks = v })
	fill(ApplicationsRange, func(m *models.Record, v int) { m.Applications = v })
	fill(CreditApprovalsRange, func(m *models.Record, v int) { m.CreditApprovals = v })
	fill(CardApprovalsRange, func(m *models.Record, v int) { m.CardApprovals = v })
	fill(ChurnRange, func(m *models.Record, v int) { m.Churn = v })

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	if cfg.ClampCards {
		for i := range rows {
			if rows[i].CardApprovals > rows[i].CreditApprovals {
				rows[i].CardApprovals = rows[i].CreditApprovals
			}
		}
	}
	return rows
}
