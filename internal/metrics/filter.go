package metrics

import (
	"strings"

	"github.com/AngelCh415/campaign-analytics/internal/models"
	"github.com/AngelCh415/campaign-analytics/internal/store"
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normSet(vals []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, v := range vals {
		v = norm(v)
		if v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}

// CSVSet splits comma separated values, dropping blanks.
func CSVSet(vals ...string) []string {
	var out []string
	for _, s := range vals {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Filter returns a new table with the rows of t matching f. Channel and campaign
// matching ignores case; an empty set does not restrict. From after To matches nothing.
func Filter(t *store.Table, f models.Filter) *store.Table {
	chSet := normSet(f.Channels)
	cpSet := normSet(f.Campaigns)
	rows := t.Query(f.From, f.To, func(r models.Record) bool {
		if len(chSet) > 0 {
			if _, ok := chSet[norm(r.Channel)]; !ok {
				return false
			}
		}
		if len(cpSet) > 0 {
			if _, ok := cpSet[norm(r.Campaign)]; !ok {
				return false
			}
		}
		return true
	})
	return store.NewTable(rows)
}
