package horseclub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/horseclub-web/internal/cache"
	"github.com/magabrotheeeer/horseclub-web/internal/clubapi"
	"github.com/magabrotheeeer/horseclub-web/internal/config"
	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/session"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
)

// sweepInterval период очистки просроченных сессий.
const sweepInterval = time.Minute

type App struct {
	server   *http.Server
	logger   *slog.Logger
	cache    *cache.Cache
	sessions *session.Store
}

// New собирает приложение. Redis подключается, только если задан его адрес.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var (
		opts       []clubapi.Option
		cacheRedis *cache.Cache
	)
	if cfg.CacheEnabled() {
		var err error
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		opts = append(opts, clubapi.WithCache(cacheRedis, cfg.CacheTTL))
		logger.Info("club api response cache enabled", slog.String("redis", cfg.AddressRedis))
	}

	api, err := clubapi.New(cfg.BaseURL, cfg.TimeoutAPI, logger, opts...)
	if err != nil {
		return nil, err
	}

	rd, err := web.New()
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(cfg.SessionTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, api, rd, sessions, nil)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		cache:    cacheRedis,
		sessions: sessions,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.sessions.Run(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeCache()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeCache()
		return err
	}
}

func (a *App) closeCache() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
}
