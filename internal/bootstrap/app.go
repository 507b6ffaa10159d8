package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alkias2/SolunarBase/internal/infra/config"
)

const drainTimeout = 10 * time.Second

// App owns the HTTP server lifecycle: serve until the context is canceled,
// then drain in-flight requests before returning.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// NewApp assembles the runnable application; wire calls this last.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server}
}

// Run serves until ctx is canceled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)

	go func() {
		a.logger.Info("forecast service listening", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down, draining connections")
		drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		return a.server.Shutdown(drainCtx)
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
