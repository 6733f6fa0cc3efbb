package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/metrics"
	"github.com/kitbuilder587/naver-search/internal/proxy"
	"github.com/kitbuilder587/naver-search/internal/server"
	"github.com/kitbuilder587/naver-search/internal/service"
	"github.com/kitbuilder587/naver-search/internal/web"
)

var (
	serveAddr    string
	serveRelease bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search proxy, the web UI and /metrics",
	Long: `Runs one HTTP server with:
  GET /api/search  credential-attaching proxy to the Naver Search API
  GET /            web search UI
  GET /health      health check
  GET /metrics     Prometheus metrics

The web UI fetches pages through PROXY_BASE_URL (this server by default).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveRelease, "release", false, "Run gin in release mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if serveAddr != "" {
		cfg.HTTP.Addr = serveAddr
	}

	m := metrics.Default()

	fetcher, err := newFetcher(cfg, logger, m)
	if err != nil {
		return err
	}

	sessions := service.NewSessionStore(fetcher, service.SessionStoreConfig{TTL: cfg.Session.TTL}, logger, m)
	defer sessions.Stop()

	ui, err := web.NewHandler(web.HandlerDeps{
		Store:      sessions,
		Logger:     logger,
		Metrics:    m,
		SessionTTL: cfg.Session.TTL,
	})
	if err != nil {
		return fmt.Errorf("create web handler: %w", err)
	}

	srvCfg := server.Config{
		Addr:        cfg.HTTP.Addr,
		ServiceName: "naver-search",
		Release:     serveRelease,
	}
	router := server.NewRouter(srvCfg, logger,
		proxy.NewHandler(cfg.Naver, logger, m),
		ui,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("serving",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("proxy", cfg.Proxy.BaseURL),
		zap.Bool("direct", direct),
	)
	return server.Run(ctx, srvCfg, router, logger)
}
