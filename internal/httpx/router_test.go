package httpx

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/campaign-analytics/internal/config"
	"github.com/AngelCh415/campaign-analytics/internal/dataset"
	"github.com/AngelCh415/campaign-analytics/internal/export"
	"github.com/AngelCh415/campaign-analytics/internal/metrics"
	"github.com/AngelCh415/campaign-analytics/internal/models"
	"github.com/AngelCh415/campaign-analytics/internal/observability"
	"github.com/AngelCh415/campaign-analytics/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	m := observability.NewMetrics()
	st := store.NewTable(metrics.Derive(dataset.Generate(dataset.DefaultConfig())))
	fmtr, err := metrics.NewFormatter("en", "R$")
	require.NoError(t, err)
	return NewRouter(RouterParams{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:    config.Config{Env: "test", RateLimit: 1000},
		Service:   metrics.NewService(st, m),
		Formatter: fmtr,
		Metrics:   m,
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHealthAndReady(t *testing.T) {
	h := newTestRouter(t)
	rr := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusOK, get(t, h, "/readyz").Code)
}

func TestDashboardAllRows(t *testing.T) {
	h := newTestRouter(t)
	rr := get(t, h, "/api/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		KPIs    models.KPISet           `json:"kpis"`
		Funnel  []models.CampaignFunnel `json:"funnel"`
		Trend   []models.DailyApprovals `json:"trend"`
		Heatmap []models.CostCell       `json:"heatmap"`
		Rows    []models.Record         `json:"rows"`
		Cards   []metrics.Card          `json:"cards"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Rows, 1000)
	assert.Len(t, body.Funnel, 4)
	assert.Len(t, body.Cards, 7)
	assert.True(t, body.KPIs.ConversionRate.Valid)
}

func TestDashboardFilteredByChannel(t *testing.T) {
	h := newTestRouter(t)
	rr := get(t, h, "/api/dashboard?from=2024-01-01&to=2024-01-31&channel=TV,Email&campaign=Promo%C3%A7%C3%A3o%20A")
	require.Equal(t, http.StatusOK, rr.Code)

	var body models.Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotEmpty(t, body.Rows)
	for _, r := range body.Rows {
		assert.Contains(t, []string{"TV", "Email"}, r.Channel)
		assert.Equal(t, "Promoção A", r.Campaign)
		assert.Equal(t, 2024, r.Date.Year())
		assert.Equal(t, 1, int(r.Date.Month()))
	}
}

func TestEmptyRangeReturnsSentinels(t *testing.T) {
	h := newTestRouter(t)
	rr := get(t, h, "/api/kpis?from=2024-03-01&to=2024-02-01")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"conversion_rate": null`)
	assert.Contains(t, rr.Body.String(), `"N/A"`)
}

func TestBadDateIsRejected(t *testing.T) {
	h := newTestRouter(t)
	rr := get(t, h, "/api/dashboard?from=01-02-2024")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var p ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Contains(t, p.Detail, "from")
}

func TestRowsPagination(t *testing.T) {
	h := newTestRouter(t)
	rr := get(t, h, "/api/rows?limit=25&offset=990")
	require.Equal(t, http.StatusOK, rr.Code)

	var page rowsPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, 1000, page.Total)
	assert.Len(t, page.Rows, 10)

	rr = get(t, h, "/api/rows")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Len(t, page.Rows, metrics.DefaultPageSize)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/rows?limit=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/rows?limit=5000").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/rows?offset=-1").Code)
}

func TestGroupedEndpoints(t *testing.T) {
	h := newTestRouter(t)

	var funnel []models.CampaignFunnel
	rr := get(t, h, "/api/funnel")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &funnel))
	require.Len(t, funnel, 4)
	assert.Equal(t, "Promoção A", funnel[0].Campaign)

	var trend []models.DailyApprovals
	rr = get(t, h, "/api/trend?from=2024-01-01&to=2024-01-10")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trend))
	assert.LessOrEqual(t, len(trend), 10)

	var heat []models.CostCell
	rr = get(t, h, "/api/heatmap?channel=TV")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &heat))
	require.Len(t, heat, 4)
	for _, c := range heat {
		assert.Equal(t, "TV", c.Channel)
	}
}

func TestOptionsAndTable(t *testing.T) {
	h := newTestRouter(t)
	var o metrics.Options
	require.NoError(t, json.Unmarshal(get(t, h, "/api/options").Body.Bytes(), &o))
	assert.Len(t, o.Channels, 4)
	assert.Equal(t, "2024-01-01", o.From)

	var rows []models.Record
	require.NoError(t, json.Unmarshal(get(t, h, "/api/table").Body.Bytes(), &rows))
	assert.Len(t, rows, 1000)
}

func TestExports(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/export/rows.csv?channel=TV")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "campaigns.csv")
	records, err := csv.NewReader(bytes.NewReader(rr.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, export.Header, records[0])
	for _, rec := range records[1:] {
		assert.Equal(t, "TV", rec[2])
	}

	rr = get(t, h, "/export/rows.xlsx?from=2024-01-01&to=2024-01-05")
	require.Equal(t, http.StatusOK, rr.Code)
	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Campaigns"}, f.GetSheetList())
}

func TestCharts(t *testing.T) {
	h := newTestRouter(t)

	rr := get(t, h, "/charts/funnel.svg")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "<svg"))
	for _, c := range dataset.DefaultCampaigns {
		assert.Contains(t, rr.Body.String(), ">"+c+"<")
	}

	rr = get(t, h, "/charts/heatmap.svg?channel=TV")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), ">TV<")
	assert.NotContains(t, rr.Body.String(), ">Email<")
	for _, c := range dataset.DefaultCampaigns {
		assert.Contains(t, rr.Body.String(), ">"+c+"<")
	}

	rr = get(t, h, "/charts/heatmap.svg?from=2030-01-01&to=2030-01-02")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = get(t, h, "/charts/trend.svg?from=2024-02-01&to=2024-02-20")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, h, "/charts/trend.svg?from=2030-01-01&to=2030-01-02")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestMetricsEndpointCountsDashboards(t *testing.T) {
	h := newTestRouter(t)
	get(t, h, "/api/dashboard")
	rr := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "campaign_dashboard_computations_total 1")
	assert.Contains(t, rr.Body.String(), `route="/api/dashboard"`)
}

func TestRateLimitedRequestsAreCounted(t *testing.T) {
	m := observability.NewMetrics()
	st := store.NewTable(metrics.Derive(dataset.Generate(dataset.DefaultConfig())))
	fmtr, err := metrics.NewFormatter("en", "R$")
	require.NoError(t, err)
	h := NewRouter(RouterParams{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:    config.Config{Env: "test", RateLimit: 1},
		Service:   metrics.NewService(st, m),
		Formatter: fmtr,
		Metrics:   m,
	})

	require.Equal(t, http.StatusOK, get(t, h, "/healthz").Code)
	require.Equal(t, http.StatusTooManyRequests, get(t, h, "/healthz").Code)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rr.Body.String(), `code="429"`)
	assert.Contains(t, rr.Body.String(), `campaign_http_requests_total{code="200",route="/healthz"} 1`)
}
