// Package app wires the base table, services and logger shared by the binaries.
package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/AngelCh415/campaign-analytics/internal/config"
	"github.com/AngelCh415/campaign-analytics/internal/dataset"
	"github.com/AngelCh415/campaign-analytics/internal/metrics"
	"github.com/AngelCh415/campaign-analytics/internal/store"
)

func NewLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// BuildTable generates the dataset once and derives its metric columns.
func BuildTable(cfg config.Config, log *slog.Logger) (*store.Table, error) {
	dcfg, err := cfg.DatasetConfig()
	if err != nil {
		return nil, err
	}
	st := store.NewTable(metrics.Derive(dataset.Generate(dcfg)))
	if from, to, ok := st.Bounds(); ok {
		log.Info("dataset generated",
			slog.Int("rows", st.Len()),
			slog.Int64("seed", dcfg.Seed),
			slog.Bool("clamp_cards", dcfg.ClampCards),
			slog.String("from", from.Format("2006-01-02")),
			slog.String("to", to.Format("2006-01-02")))
	}
	return st, nil
}
