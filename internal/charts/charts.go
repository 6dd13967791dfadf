// Package charts renders the dashboard funnel, approval trend and cost heatmap as SVG.
package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

// ErrNoData is returned when the filtered view has nothing to draw.
var ErrNoData = errors.New("charts: no data to render")

const (
	DefaultWidth  = 960
	DefaultHeight = 400
)

var (
	creditColor = drawing.ColorFromHex("0ea5e9")
	cardColor   = drawing.ColorFromHex("f97316")
)

var funnelStages = []string{"Visits", "Clicks", "Applications", "Credit Approvals"}

// Funnel draws one line per campaign across the visits, clicks, applications and
// credit approvals stages, labelled by campaign in the legend.
func Funnel(w io.Writer, funnel []models.CampaignFunnel) error {
	if len(funnel) == 0 {
		return ErrNoData
	}
	ticks := make([]chart.Tick, len(funnelStages))
	xs := make([]float64, len(funnelStages))
	for i, name := range funnelStages {
		ticks[i] = chart.Tick{Value: float64(i), Label: name}
		xs[i] = float64(i)
	}

	maxY := 1.0
	series := make([]chart.Series, 0, len(funnel))
	for _, f := range funnel {
		ys := []float64{float64(f.Visits), float64(f.Clicks), float64(f.Applications), float64(f.CreditApprovals)}
		for _, y := range ys {
			maxY = math.Max(maxY, y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    f.Campaign,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2},
		})
	}

	graph := chart.Chart{
		Title:  "Conversion Funnel by Campaign",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("charts: funnel: %w", err)
	}
	return nil
}

// Trend draws credit and card approvals per day.
func Trend(w io.Writer, points []models.DailyApprovals) error {
	if len(points) == 0 {
		return ErrNoData
	}
	xs := make([]time.Time, 0, len(points)+1)
	credit := make([]float64, 0, len(points)+1)
	card := make([]float64, 0, len(points)+1)
	maxY := 1.0
	for _, p := range points {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return fmt.Errorf("charts: trend date %q: %w", p.Date, err)
		}
		xs = append(xs, d)
		credit = append(credit, float64(p.CreditApprovals))
		card = append(card, float64(p.CardApprovals))
		maxY = math.Max(maxY, math.Max(float64(p.CreditApprovals), float64(p.CardApprovals)))
	}
	// a single point has no x range to plot
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		credit = append(credit, credit[0])
		card = append(card, card[0])
	}

	graph := chart.Chart{
		Title:  "Approval Trend",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis: chart.YAxis{
			Name:  "approvals",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Credit Approvals",
				XValues: xs,
				YValues: credit,
				Style:   chart.Style{StrokeColor: creditColor, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Card Approvals",
				XValues: xs,
				YValues: card,
				Style:   chart.Style{StrokeColor: cardColor, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("charts: trend: %w", err)
	}
	return nil
}

var (
	lowCostColor  = drawing.ColorFromHex("22c55e")
	highCostColor = drawing.ColorFromHex("ef4444")
	missingColor  = drawing.ColorFromHex("e5e7eb")
)

const (
	heatLabelWidth  = 140
	heatHeaderSpace = 70
	heatRowHeight   = 44
)

// Heatmap draws average cost per approval on a channel by campaign grid. Cells with
// no defined cost, and pairs absent from cells, show "N/A".
func Heatmap(w io.Writer, cells []models.CostCell) error {
	if len(cells) == 0 {
		return ErrNoData
	}
	var channels, campaigns []string
	seenCh, seenCa := map[string]bool{}, map[string]bool{}
	grid := make(map[[2]string]models.Ratio, len(cells))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range cells {
		if !seenCh[c.Channel] {
			seenCh[c.Channel] = true
			channels = append(channels, c.Channel)
		}
		if !seenCa[c.Campaign] {
			seenCa[c.Campaign] = true
			campaigns = append(campaigns, c.Campaign)
		}
		grid[[2]string{c.Channel, c.Campaign}] = c.AvgCostPerApproval
		if c.AvgCostPerApproval.Valid {
			lo = math.Min(lo, c.AvgCostPerApproval.Value)
			hi = math.Max(hi, c.AvgCostPerApproval.Value)
		}
	}
	sort.Strings(channels)
	sort.Strings(campaigns)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("charts: heatmap font: %w", err)
	}
	height := heatHeaderSpace + heatRowHeight*len(channels) + 16
	r, err := chart.SVG(DefaultWidth, height)
	if err != nil {
		return fmt.Errorf("charts: heatmap: %w", err)
	}

	text := chart.Style{
		Font:                font,
		FontSize:            10,
		FontColor:           drawing.ColorBlack,
		TextHorizontalAlign: chart.TextHorizontalAlignCenter,
		TextVerticalAlign:   chart.TextVerticalAlignMiddle,
	}
	title := text
	title.FontSize = 14
	chart.Draw.TextWithin(r, "Average Cost per Approval", chart.Box{Top: 4, Left: 0, Right: DefaultWidth, Bottom: 30}, title)

	cellWidth := (DefaultWidth - heatLabelWidth - 16) / len(campaigns)
	for j, ca := range campaigns {
		left := heatLabelWidth + j*cellWidth
		chart.Draw.TextWithin(r, ca, chart.Box{Top: 36, Left: left, Right: left + cellWidth, Bottom: heatHeaderSpace - 4}, text)
	}
	for i, ch := range channels {
		top := heatHeaderSpace + i*heatRowHeight
		rowLabel := text
		rowLabel.TextHorizontalAlign = chart.TextHorizontalAlignRight
		chart.Draw.TextWithin(r, ch, chart.Box{Top: top, Left: 0, Right: heatLabelWidth - 8, Bottom: top + heatRowHeight}, rowLabel)

		for j, ca := range campaigns {
			box := chart.Box{Top: top, Left: heatLabelWidth + j*cellWidth, Right: heatLabelWidth + (j+1)*cellWidth, Bottom: top + heatRowHeight}
			v := grid[[2]string{ch, ca}]
			fill, label := missingColor, models.NotAvailable
			if v.Valid {
				fill, label = heatColor(v.Value, lo, hi), fmt.Sprintf("%.2f", v.Value)
			}
			chart.Draw.Box(r, box, chart.Style{FillColor: fill, StrokeColor: drawing.ColorWhite, StrokeWidth: 1})
			chart.Draw.TextWithin(r, label, box, text)
		}
	}
	if err := r.Save(w); err != nil {
		return fmt.Errorf("charts: heatmap: %w", err)
	}
	return nil
}

// heatColor blends from lowCostColor at lo to highCostColor at hi.
func heatColor(v, lo, hi float64) drawing.Color {
	t := 0.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + t*(float64(b)-float64(a))) }
	return drawing.Color{
		R: mix(lowCostColor.R, highCostColor.R),
		G: mix(lowCostColor.G, highCostColor.G),
		B: mix(lowCostColor.B, highCostColor.B),
		A: 255,
	}
}
