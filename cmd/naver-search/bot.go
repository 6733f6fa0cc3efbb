package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kitbuilder587/naver-search/internal/metrics"
	"github.com/kitbuilder587/naver-search/internal/service"
	"github.com/kitbuilder587/naver-search/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Runs a Telegram bot that searches Naver for every message it receives.
Each chat keeps its own results, filters and page position.
Requires TELEGRAM_BOT_TOKEN.`,
	RunE: runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Telegram.Validate(); err != nil {
		return err
	}

	m := metrics.Default()

	fetcher, err := newFetcher(cfg, logger, m)
	if err != nil {
		return err
	}

	sessions := service.NewSessionStore(fetcher, service.SessionStoreConfig{TTL: cfg.Session.TTL}, logger, m,
		service.WithPageSize(telegram.ResultsPerMessage))
	defer sessions.Stop()

	bot, err := telegram.New(telegram.BotConfig{
		Token: cfg.Telegram.Token,
		Debug: cfg.Telegram.Debug,
	}, sessions, logger, m)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
