package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AngelCh415/campaign-analytics/internal/app"
	"github.com/AngelCh415/campaign-analytics/internal/config"
	"github.com/AngelCh415/campaign-analytics/internal/httpx"
	"github.com/AngelCh415/campaign-analytics/internal/metrics"
	"github.com/AngelCh415/campaign-analytics/internal/observability"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	st, err := app.BuildTable(cfg, logger)
	if err != nil {
		logger.Error("build dataset", slog.String("err", err.Error()))
		os.Exit(1)
	}
	fmtr, err := metrics.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		logger.Error("display locale", slog.String("err", err.Error()))
		os.Exit(1)
	}
	m := observability.NewMetrics()
	mSvc := metrics.NewService(st, m)

	r := httpx.NewRouter(httpx.RouterParams{
		Logger:    logger,
		Config:    cfg,
		Service:   mSvc,
		Formatter: fmtr,
		Metrics:   m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error("listen", slog.String("addr", srv.Addr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := serve(ctx, srv, ln, shutdownTimeout); err != nil {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

const shutdownTimeout = 10 * time.Second

// serve runs srv on ln until ctx is done, then waits for in-flight requests to
// drain before returning.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
