// Package server собирает gin-роутер и запускает HTTP-сервер с graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/metrics"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 90 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Routes - все, что умеет вешать себя на роутер (прокси, веб-интерфейс)
type Routes interface {
	Register(r gin.IRoutes)
}

type Config struct {
	Addr        string
	ServiceName string
	Release     bool
}

// NewRouter: request id, логирование, recovery, /health и /metrics, затем routes.
func NewRouter(cfg Config, logger *zap.Logger, routes ...Routes) *gin.Engine {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestID())
	router.Use(Logging(logger))
	router.Use(Recovery(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.ServiceName,
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	for _, r := range routes {
		r.Register(router)
	}

	return router
}

// Run блокируется до отмены ctx, потом дает активным запросам доработать.
func Run(ctx context.Context, cfg Config, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
