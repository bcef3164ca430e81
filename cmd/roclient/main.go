package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/ronet/internal/config"
)

const ConfigPath = "config/roclient.yaml"

// statusInterval is how often the reporter logs progress.
const statusInterval = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config
	cfgPath := ConfigPath
	if p := os.Getenv("RONET_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadClient(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Configure slog
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	slog.Info("ronet client starting", "login", cfg.Login.Address, "slot", cfg.CharServer.Slot)

	b := newBot(cfg, os.Stdout)
	defer b.close()

	if err := b.start(time.Now()); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tickLoop(gctx, b, cfg.TickInterval)
	})

	g.Go(func() error {
		reportStatus(gctx, b, statusInterval)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

// tickLoop owns every client: nothing else touches them while it runs.
func tickLoop(ctx context.Context, b *bot, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := b.tick(now); err != nil {
				return err
			}
		}
	}
}

func reportStatus(ctx context.Context, b *bot, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := b.progress()
			slog.Info("status",
				"phase", s.Phase,
				"zone_state", s.ZoneState,
				"character", s.Character,
				"map", s.Map,
				"x", s.Position.X,
				"y", s.Position.Y,
				"entities", s.Entities)
		}
	}
}
