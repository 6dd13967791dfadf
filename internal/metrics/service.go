package metrics

import (
	"sort"
	"time"

	"github.com/AngelCh415/campaign-analytics/internal/models"
	"github.com/AngelCh415/campaign-analytics/internal/store"
)

// Observer receives timing of each dashboard computation.
type Observer interface {
	ObserveDashboard(rows int, elapsed time.Duration)
}

// Service answers filter requests against the base table. The table is never
// mutated, so one Service can serve concurrent requests.
type Service struct {
	st  *store.Table
	obs Observer
}

// NewService wraps a metric-annotated base table. obs may be nil.
func NewService(st *store.Table, obs Observer) *Service {
	return &Service{st: st, obs: obs}
}

// FullTable returns every row of the base table.
func (s *Service) FullTable() []models.Record { return s.st.Rows() }

// Options lists the values a filter can take.
type Options struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Channels  []string `json:"channels"`
	Campaigns []string `json:"campaigns"`
}

func (s *Service) Options() Options {
	var o Options
	if from, to, ok := s.st.Bounds(); ok {
		o.From = from.Format("2006-01-02")
		o.To = to.Format("2006-01-02")
	}
	chs := map[string]struct{}{}
	cps := map[string]struct{}{}
	for _, r := range s.st.Rows() {
		chs[r.Channel] = struct{}{}
		cps[r.Campaign] = struct{}{}
	}
	o.Channels = sortedKeys(chs)
	o.Campaigns = sortedKeys(cps)
	return o
}

// WithDefaults fills a zero From/To with the table's first/last date.
func (s *Service) WithDefaults(f models.Filter) models.Filter {
	from, to, ok := s.st.Bounds()
	if !ok {
		return f
	}
	if f.From.IsZero() {
		f.From = from
	}
	if f.To.IsZero() {
		f.To = to
	}
	return f
}

// Filter applies f (with defaults) to the base table.
func (s *Service) Filter(f models.Filter) []models.Record {
	return Filter(s.st, s.WithDefaults(f)).Rows()
}

// Apply filters the base table and computes everything the dashboard draws.
func (s *Service) Apply(f models.Filter) models.Dashboard {
	start := time.Now()
	rows := s.Filter(f)
	d := models.Dashboard{
		KPIs:    ComputeKPIs(rows),
		Funnel:  GroupByCampaign(rows),
		Trend:   GroupByDate(rows),
		Heatmap: GroupByChannelCampaign(rows),
		Rows:    rows,
	}
	if s.obs != nil {
		s.obs.ObserveDashboard(len(rows), time.Since(start))
	}
	return d
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
