package journalservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/emofit/emofit-server/internal/api"
	"github.com/emofit/emofit-server/internal/auth"
	"github.com/emofit/emofit-server/internal/config"
	"github.com/emofit/emofit-server/internal/content"
	"github.com/emofit/emofit-server/internal/health"
	"github.com/emofit/emofit-server/internal/platform/logger"
	"github.com/emofit/emofit-server/internal/services"
	"github.com/emofit/emofit-server/internal/store"
	"github.com/emofit/emofit-server/internal/store/postgres"
	"github.com/emofit/emofit-server/internal/store/sqlite"
)

// Run starts the journal service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("journal-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Journal service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer closeStore()

	router := buildRouter(st, cfg, log)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore opens the configured store adapter and returns a close func for
// shutdown.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Bootstrap(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewWithDB(db), func() { _ = db.Close() }, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		st, err := sqlite.NewWithDB(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return st, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// buildRouter wires services and handlers onto the router.
func buildRouter(st store.Store, cfg *config.Config, log zerolog.Logger) http.Handler {
	tokens := auth.NewJWTAuthorizer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	contentSvc := content.NewService(content.Config{
		QuotesURL:     cfg.QuotesURL,
		AdviceURL:     cfg.AdviceURL,
		RecipesURL:    cfg.RecipesURL,
		RecipesAppID:  cfg.RecipesAppID,
		RecipesAppKey: cfg.RecipesAppKey,
		Timeout:       time.Duration(cfg.ContentTimeoutSeconds) * time.Second,
	}, log)

	return api.NewRouter(api.Deps{
		Journal:    services.NewJournalService(st),
		Users:      services.NewUserService(st),
		Content:    contentSvc,
		Authorizer: tokens,
		Tokens:     tokens,
	})
}

// startHealthCheckers starts the store checker and the service-level
// aggregator; binds health to the /api/health endpoint.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
