package metrics

import (
	"sort"
	"time"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

// GroupByCampaign sums the funnel stages per campaign, sorted by campaign name.
func GroupByCampaign(rows []models.Record) []models.CampaignFunnel {
	idx := map[string]int{}
	out := []models.CampaignFunnel{}
	for _, r := range rows {
		i, ok := idx[r.Campaign]
		if !ok {
			i = len(out)
			idx[r.Campaign] = i
			out = append(out, models.CampaignFunnel{Campaign: r.Campaign})
		}
		g := &out[i]
		g.Visits += r.Visits
		g.Clicks += r.Clicks
		g.Applications += r.Applications
		g.CreditApprovals += r.CreditApprovals
		g.CardApprovals += r.CardApprovals
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Campaign < out[j].Campaign })
	return out
}

// GroupByDate sums approvals per calendar day in ascending date order.
func GroupByDate(rows []models.Record) []models.DailyApprovals {
	type acc struct {
		day          time.Time
		credit, card int
	}
	idx := map[time.Time]int{}
	var accs []acc
	for _, r := range rows {
		d := r.Date.UTC()
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		i, ok := idx[d]
		if !ok {
			i = len(accs)
			idx[d] = i
			accs = append(accs, acc{day: d})
		}
		accs[i].credit += r.CreditApprovals
		accs[i].card += r.CardApprovals
	}
	sort.Slice(accs, func(i, j int) bool { return accs[i].day.Before(accs[j].day) })

	out := make([]models.DailyApprovals, 0, len(accs))
	for _, a := range accs {
		out = append(out, models.DailyApprovals{
			Date:            a.day.Format("2006-01-02"),
			CreditApprovals: a.credit,
			CardApprovals:   a.card,
		})
	}
	return out
}

// GroupByChannelCampaign averages the defined cost per approval of each
// (channel, campaign) pair present in rows, sorted by channel then campaign.
// A pair whose rows all lack a cost per approval reports an undefined average.
func GroupByChannelCampaign(rows []models.Record) []models.CostCell {
	type key struct{ channel, campaign string }
	type acc struct {
		sum float64
		n   int
	}
	accs := map[key]*acc{}
	var keys []key
	for _, r := range rows {
		k := key{r.Channel, r.Campaign}
		a, ok := accs[k]
		if !ok {
			a = &acc{}
			accs[k] = a
			keys = append(keys, k)
		}
		if r.CostPerApproval.Valid {
			a.sum += r.CostPerApproval.Value
			a.n++
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].channel != keys[j].channel {
			return keys[i].channel < keys[j].channel
		}
		return keys[i].campaign < keys[j].campaign
	})

	out := make([]models.CostCell, 0, len(keys))
	for _, k := range keys {
		a := accs[k]
		out = append(out, models.CostCell{
			Channel:            k.channel,
			Campaign:           k.campaign,
			AvgCostPerApproval: models.Div(a.sum, float64(a.n)),
			Samples:            a.n,
		})
	}
	return out
}
