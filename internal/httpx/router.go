package httpx

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AngelCh415/campaign-analytics/internal/charts"
	"github.com/AngelCh415/campaign-analytics/internal/config"
	"github.com/AngelCh415/campaign-analytics/internal/export"
	"github.com/AngelCh415/campaign-analytics/internal/metrics"
	"github.com/AngelCh415/campaign-analytics/internal/models"
	"github.com/AngelCh415/campaign-analytics/internal/observability"
)

// RouterParams groups what the HTTP layer needs.
type RouterParams struct {
	Logger    *slog.Logger
	Config    config.Config
	Service   *metrics.Service
	Formatter *metrics.Formatter
	Metrics   *observability.Metrics
}

type dashboardResponse struct {
	models.Dashboard
	Cards []metrics.Card `json:"cards"`
}

type rowsPage struct {
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Rows   []models.Record `json:"rows"`
}

type kpiResponse struct {
	KPIs  models.KPISet  `json:"kpis"`
	Cards []metrics.Card `json:"cards"`
}

func NewRouter(p RouterParams) http.Handler {
	log, svc := p.Logger, p.Service
	mux := chi.NewRouter()
	for _, mw := range middlewareStack(log, p.Config, p.Metrics) {
		mux.Use(mw)
	}

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if len(svc.FullTable()) == 0 {
			http.Error(w, "dataset empty", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
		w.Write([]byte("ready"))
	})
	mux.Method(http.MethodGet, "/metrics", p.Metrics.Handler())

	// withFilter parses the filter query and hands a valid filter to h.
	withFilter := func(h func(http.ResponseWriter, *http.Request, models.Filter)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f, err := parseFilter(r.URL.Query())
			if err != nil {
				respondError(w, err)
				return
			}
			h(w, r, f)
		}
	}

	mux.Route("/api", func(r chi.Router) {
		r.Get("/options", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.Options())
		})
		r.Get("/table", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.FullTable())
		})
		r.Get("/dashboard", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
			d := svc.Apply(f)
			writeJSON(w, http.StatusOK, dashboardResponse{Dashboard: d, Cards: p.Formatter.Cards(d.KPIs)})
		}))
		r.Get("/kpis", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
			k := metrics.ComputeKPIs(svc.Filter(f))
			writeJSON(w, http.StatusOK, kpiResponse{KPIs: k, Cards: p.Formatter.Cards(k)})
		}))
		r.Get("/funnel", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
			writeJSON(w, http.StatusOK, metrics.GroupByCampaign(svc.Filter(f)))
		}))
		r.Get("/trend", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
			writeJSON(w, http.StatusOK, metrics.GroupByDate(svc.Filter(f)))
		}))
		r.Get("/heatmap", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
			writeJSON(w, http.StatusOK, metrics.GroupByChannelCampaign(svc.Filter(f)))
		}))
		r.Get("/rows", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
			limit, offset, err := parsePage(r.URL.Query())
			if err != nil {
				respondError(w, err)
				return
			}
			rows := svc.Filter(f)
			page := metrics.Paginate(rows, limit, offset)
			writeJSON(w, http.StatusOK, rowsPage{Total: len(rows), Limit: limit, Offset: offset, Rows: page})
		}))
	})

	mux.Get("/export/rows.csv", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, svc.Filter(f)); err != nil {
			log.Error("csv export", slog.String("err", err.Error()))
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="campaigns.csv"`)
		w.Write(buf.Bytes())
	}))
	mux.Get("/export/rows.xlsx", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, svc.Filter(f)); err != nil {
			log.Error("xlsx export", slog.String("err", err.Error()))
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="campaigns.xlsx"`)
		w.Write(buf.Bytes())
	}))

	mux.Get("/charts/funnel.svg", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
		writeSVG(w, log, func(buf *bytes.Buffer) error {
			return charts.Funnel(buf, metrics.GroupByCampaign(svc.Filter(f)))
		})
	}))
	mux.Get("/charts/trend.svg", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
		writeSVG(w, log, func(buf *bytes.Buffer) error {
			return charts.Trend(buf, metrics.GroupByDate(svc.Filter(f)))
		})
	}))
	mux.Get("/charts/heatmap.svg", withFilter(func(w http.ResponseWriter, r *http.Request, f models.Filter) {
		writeSVG(w, log, func(buf *bytes.Buffer) error {
			return charts.Heatmap(buf, metrics.GroupByChannelCampaign(svc.Filter(f)))
		})
	}))

	return mux
}

// writeSVG renders into a buffer first so a render error can still become a proper status.
func writeSVG(w http.ResponseWriter, log *slog.Logger, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	err := render(&buf)
	switch {
	case errors.Is(err, charts.ErrNoData):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		log.Error("render chart", slog.String("err", err.Error()))
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}
