package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/25x8/sre-stack/internal/app"
	"github.com/25x8/sre-stack/internal/buildinfo"
	"github.com/25x8/sre-stack/internal/config"
	"github.com/25x8/sre-stack/internal/handler"
	"github.com/25x8/sre-stack/internal/logger"
	"github.com/25x8/sre-stack/internal/metrics"
	"github.com/25x8/sre-stack/internal/monitor"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(runFn func(ctx context.Context, cfg *config.ServerConfig) error) *cli.Command {
	return &cli.Command{
		Name:    "server",
		Usage:   "Demo service with simulated health/status endpoints and Prometheus metrics",
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
				Value:   "0.0.0.0:5000",
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
			&cli.IntFlag{
				Name:    "monitor-interval",
				Usage:   "host load sampling interval in seconds (0 disables)",
				Sources: cli.EnvVars("MONITOR_INTERVAL"),
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

// resolveConfig: значения по умолчанию, затем файл, затем флаги и переменные окружения
func resolveConfig(cmd *cli.Command) (*config.ServerConfig, error) {
	cfg, err := config.LoadServerConfig(cmd.String("config"))
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
	if cmd.IsSet("monitor-interval") {
		cfg.MonitorInterval = int(cmd.Int("monitor-interval"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.ServerConfig) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Log.Info("Starting metrics service", buildinfo.Fields()...)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewAppRegistry(cfg.RuntimeMetrics)

	mon := monitor.New(cfg.MonitorPeriod(), reg, nil)
	mon.Run(ctx)

	h := handler.NewHandler(reg)
	err := app.Serve(ctx, cfg.Address, app.InitializeRouter(h))

	stop()
	mon.Wait()

	if err != nil {
		logger.Log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	logger.Log.Info("Server stopped")
	return nil
}
