package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/config"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// App is the assembled HTTP application.
type App struct {
	config  *config.Config
	router  *api.Router
	server  *http.Server
	closers []func() error
	workers []func(ctx context.Context)
}

// Run serves until ctx is cancelled, then shuts down within server.shutdown_timeout.
// Background workers share ctx and are awaited before Run returns.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for _, work := range a.workers {
		wg.Add(1)
		go func(work func(context.Context)) {
			defer wg.Done()
			work(workerCtx)
		}(work)
	}
	defer func() {
		stopWorkers()
		wg.Wait()
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("health", "/api/v1/health"))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		a.release()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.release()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func (a *App) release() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}

// Handler exposes the router for tests.
func (a *App) Handler() http.Handler {
	return a.router.GetEngine()
}
