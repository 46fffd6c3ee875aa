// Command simulator runs battles and enhancements against a sandbox ledger.
//
//	simulator battle  -stage 1 -seed 42 [-store]
//	simulator verify  -stage 1 -seeds 100
//	simulator enhance -level 3 -seed 7 [-store]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/chronicle/internal/config"
	"github.com/udisondev/chronicle/internal/data"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: simulator <battle|verify|enhance> [flags]")

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	tables, err := loadTables(cfg)
	if err != nil {
		return fmt.Errorf("loading tables: %w", err)
	}

	env := &env{cfg: cfg, tables: tables, out: stdout}
	switch args[0] {
	case "battle":
		return env.battle(ctx, args[1:])
	case "verify":
		return env.verify(ctx, args[1:])
	case "enhance":
		return env.enhance(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func loadTables(cfg config.Simulator) (*data.Tables, error) {
	if cfg.DataDir != "" {
		return data.LoadDir(cfg.DataDir)
	}
	return data.Default()
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
