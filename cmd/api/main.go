package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"savvy-blog/internal/common/pagination"
	"savvy-blog/internal/config"
	pgRepo "savvy-blog/internal/infra/adapter/persistence/postgres"
	"savvy-blog/internal/infra/db"
	"savvy-blog/internal/observability/logging"
	"savvy-blog/internal/observability/metrics"
	"savvy-blog/internal/observability/tracing"

	blogUC "savvy-blog/internal/usecase/blog"
	previewUC "savvy-blog/internal/usecase/preview"
	sitemapUC "savvy-blog/internal/usecase/sitemap"

	hhttp "savvy-blog/internal/handler/http"
	hblog "savvy-blog/internal/handler/http/blog"
	hfeeds "savvy-blog/internal/handler/http/feeds"
	hpreview "savvy-blog/internal/handler/http/preview"
	"savvy-blog/internal/handler/http/requestid"
)

func main() {
	// .env is a local development convenience; absence is fine
	_ = godotenv.Load()

	logger := logging.NewLogger()
	tracing.SetupPropagation()

	cfg, err := config.LoadSiteConfig(os.Getenv("SITE_CONFIG"))
	if err != nil {
		logger.Error("failed to load site configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := db.Open(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()

	app := setupApplication(logger, database, cfg)
	handler := applyMiddleware(logger, app.mux, cfg)

	runServer(logger, handler, app, database, cfg, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// application holds the wired services and routes needed at runtime.
type application struct {
	mux     *http.ServeMux
	blogSvc *blogUC.Service
	snapSvc *sitemapUC.Service
}

// setupApplication wires repositories, use cases, and routes.
func setupApplication(logger *slog.Logger, database *sql.DB, cfg config.SiteConfig) *application {
	postRepo := pgRepo.NewPostRepo(database)
	categoryRepo := pgRepo.NewCategoryRepo(database)

	paginationCfg := pagination.LoadFromEnv()

	blogSvc := blogUC.NewService(postRepo, categoryRepo, paginationCfg.PageSize)

	renderer := previewUC.NewRenderer(postRepo, previewUC.Config{
		Origin:           cfg.Origin,
		BundlePath:       cfg.BundlePath,
		DefaultMetaImage: cfg.DefaultMetaImage,
	}, logger)

	snapSvc := sitemapUC.NewService(postRepo, sitemapUC.Config{
		Origin:      cfg.Origin,
		SiteName:    cfg.SiteName,
		Description: cfg.Description,
	}, logger)

	mux := http.NewServeMux()

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: getVersion(), Snapshots: snapSvc})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	hblog.Register(mux, blogSvc, paginationCfg, logger)

	mux.Handle("GET /sitemap.xml", hfeeds.SitemapHandler{Source: snapSvc})
	mux.Handle("GET /blog/rss.xml", hfeeds.RSSHandler{Source: snapSvc})

	// Everything else falls through to the preview renderer, which answers
	// blog post paths with a crawler document and anything else with a
	// pass-through response.
	mux.Handle("/", hpreview.Handler{Renderer: renderer})

	return &application{mux: mux, blogSvc: blogSvc, snapSvc: snapSvc}
}

// applyMiddleware wraps the router with the middleware chain.
// Order (outermost first): CORS → Request ID → Tracing → Rate Limit →
// Recovery → Logging → Input Validation → Timeout → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, cfg config.SiteConfig) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestid.RequestIDHeader},
		MaxAge:         300,
	})

	chain := handler

	// Applied in reverse order (innermost first)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(cfg.RequestTimeout.AsDuration())(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if cfg.RateLimit.Enabled {
		limiter := hhttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		chain = limiter.Limit(chain)
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = corsHandler.Handler(chain)

	return chain
}

// startSnapshotRefresh runs the initial snapshot build and schedules
// periodic rebuilds. A failed refresh keeps the previous snapshot.
func startSnapshotRefresh(ctx context.Context, logger *slog.Logger, snapSvc *sitemapUC.Service, schedule string) *cron.Cron {
	refresh := func() {
		start := time.Now()
		err := snapSvc.Refresh(ctx)
		metrics.RecordSnapshotRefresh(err == nil, time.Since(start))
		if err != nil {
			logger.Error("snapshot refresh failed", slog.Any("error", err))
			return
		}
		logger.Info("snapshots refreshed",
			slog.Duration("duration", time.Since(start)))
	}

	go refresh()

	c := cron.New()
	if _, err := c.AddFunc(schedule, refresh); err != nil {
		// Schedule was validated at config load; this only fires on a bug
		logger.Error("failed to schedule snapshot refresh", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	return c
}

// startPoolStatsLoop publishes database pool statistics and the published
// post count as gauges until ctx is canceled.
func startPoolStatsLoop(ctx context.Context, logger *slog.Logger, database *sql.DB, blogSvc *blogUC.Service) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := database.Stats()
			metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)

			countCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			count, err := blogSvc.Posts.CountPosts(countCtx)
			cancel()
			if err != nil {
				logger.Warn("post count refresh failed", slog.Any("error", err))
				continue
			}
			metrics.UpdatePostsTotal(count)
		}
	}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, app *application, database *sql.DB, cfg config.SiteConfig, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := startSnapshotRefresh(ctx, logger, app.snapSvc, cfg.SitemapSchedule)
	go startPoolStatsLoop(ctx, logger, database, app.blogSvc)
	go hhttp.StartSLOUpdater(ctx, time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("origin", cfg.Origin),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Stop background work before the listener drains
	schedulerCtx := scheduler.Stop()
	cancel()
	<-schedulerCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.AsDuration())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
