package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/config"
	"github.com/kitbuilder587/naver-search/internal/metrics"
	"github.com/kitbuilder587/naver-search/internal/search"
	"github.com/kitbuilder587/naver-search/internal/search/naver"
	"github.com/kitbuilder587/naver-search/internal/search/proxyclient"
	"github.com/kitbuilder587/naver-search/internal/service"
)

var (
	envFile string
	direct  bool
)

var rootCmd = &cobra.Command{
	Use:   "naver-search",
	Short: "Naver news and cafe search",
	Long: `naver-search fetches up to 1000 Naver news or cafe results for a query,
merges them in rank order and lets you filter and page through them.

The Naver credentials live only in the proxy (serve). Clients talk to the
proxy unless --direct is given.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored if missing)")
	rootCmd.PersistentFlags().BoolVar(&direct, "direct", false, "Call the Naver API directly instead of going through the proxy")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(botCmd)
}

// loadConfig - .env, окружение, логгер. Общий вход для всех команд.
func loadConfig() (*config.Config, *zap.Logger, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, logger, nil
}

func newPageClient(cfg *config.Config, logger *zap.Logger) (search.PageClient, error) {
	if !direct {
		return proxyclient.New(proxyclient.Config{
			BaseURL: cfg.Proxy.BaseURL,
			Timeout: cfg.Proxy.Timeout,
		}, logger), nil
	}

	if err := cfg.Naver.Validate(); err != nil {
		return nil, fmt.Errorf("--direct: %w", err)
	}
	client, err := naver.New(naver.Config{
		ClientID:     cfg.Naver.ClientID,
		ClientSecret: cfg.Naver.ClientSecret,
		BaseURL:      cfg.Naver.BaseURL,
		Timeout:      cfg.Naver.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newFetcher(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*service.Fetcher, error) {
	client, err := newPageClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	return service.NewFetcher(service.FetcherDeps{
		Client:  client,
		Logger:  logger,
		Metrics: m,
		Config:  service.FetcherConfig{Timeout: cfg.Search.Timeout},
	}), nil
}
