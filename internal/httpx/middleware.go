package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/AngelCh415/campaign-analytics/internal/config"
	"github.com/AngelCh415/campaign-analytics/internal/observability"
	"github.com/AngelCh415/campaign-analytics/internal/utils"
)

func middlewareStack(log *slog.Logger, cfg config.Config, m *observability.Metrics) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'",
		SSLRedirect:           cfg.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !cfg.IsProduction(),
	})

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	// metrics wrap the limiter and timeout, 429 and 504 responses included
	mws := []func(http.Handler) http.Handler{
		middleware.RealIP,
		utils.RequestID,
		utils.Logger(log),
		m.Middleware,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		secureMiddleware.Handler,
		middleware.Compress(5),
	}
	if cfg.RateLimit > 0 {
		mws = append(mws, httprate.Limit(cfg.RateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}
	return mws
}
