package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/25x8/sre-stack/internal/alert"
	"github.com/25x8/sre-stack/internal/app"
	"github.com/25x8/sre-stack/internal/buildinfo"
	"github.com/25x8/sre-stack/internal/config"
	"github.com/25x8/sre-stack/internal/logger"
	"github.com/25x8/sre-stack/internal/metrics"
	"github.com/25x8/sre-stack/internal/notifier"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(runFn func(ctx context.Context, cfg *config.AlertConfig) error) *cli.Command {
	return &cli.Command{
		Name:    "alertbot",
		Usage:   "Receives Alertmanager webhooks and forwards alerts to a Telegram chat",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to JSON config file",
				Sources: cli.EnvVars("CONFIG"),
			},
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Value:   "0.0.0.0:8080",
				Usage:   "HTTP server address",
				Sources: cli.EnvVars("ADDRESS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "runtime-metrics",
				Value:   true,
				Usage:   "export Go runtime and process metrics",
				Sources: cli.EnvVars("RUNTIME_METRICS"),
			},
			&cli.StringFlag{
				Name:    "telegram-token",
				Usage:   "Telegram bot token",
				Sources: cli.EnvVars("TELEGRAM_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "telegram-chat-id",
				Usage:   "Telegram chat to send alerts to",
				Sources: cli.EnvVars("TELEGRAM_CHAT_ID"),
			},
			&cli.StringFlag{
				Name:    "telegram-api-url",
				Value:   notifier.DefaultTelegramAPIURL,
				Usage:   "Telegram Bot API base URL",
				Sources: cli.EnvVars("TELEGRAM_API_URL"),
			},
			&cli.IntFlag{
				Name:    "send-timeout",
				Value:   10,
				Usage:   "timeout of a single sendMessage call in seconds",
				Sources: cli.EnvVars("SEND_TIMEOUT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return runFn(ctx, cfg)
		},
	}
}

// resolveConfig: значения по умолчанию, затем файл, затем флаги и переменные окружения.
// Без TELEGRAM_TOKEN и TELEGRAM_CHAT_ID запуск завершается ошибкой.
func resolveConfig(cmd *cli.Command) (*config.AlertConfig, error) {
	cfg, err := config.LoadAlertConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("address") {
		cfg.Address = cmd.String("address")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("runtime-metrics") {
		cfg.RuntimeMetrics = cmd.Bool("runtime-metrics")
	}
	if cmd.IsSet("telegram-token") {
		cfg.TelegramToken = cmd.String("telegram-token")
	}
	if cmd.IsSet("telegram-chat-id") {
		cfg.TelegramChatID = cmd.String("telegram-chat-id")
	}
	if cmd.IsSet("telegram-api-url") {
		cfg.TelegramAPIURL = cmd.String("telegram-api-url")
	}
	if cmd.IsSet("send-timeout") {
		cfg.SendTimeout = int(cmd.Int("send-timeout"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.AlertConfig) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Log.Info("Starting alert forwarder", buildinfo.Fields()...)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewAlertRegistry(cfg.RuntimeMetrics)
	sender := notifier.NewTelegramSender(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.TelegramChatID, cfg.SendTimeoutDuration())
	h := alert.NewHandler(sender, reg)

	if err := app.Serve(ctx, cfg.Address, app.InitializeAlertRouter(h, reg)); err != nil {
		logger.Log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	logger.Log.Info("Server stopped")
	return nil
}
