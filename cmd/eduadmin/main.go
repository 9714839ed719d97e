package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yungbote/eduadmin/internal/config"
	"github.com/yungbote/eduadmin/internal/observability"
	"github.com/yungbote/eduadmin/internal/platform/envutil"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/platform/shutdown"
	"github.com/yungbote/eduadmin/internal/render"
	"github.com/yungbote/eduadmin/internal/session"
)

func main() {
	cfg, err := config.Load()
	errAndDie(err)

	mode := "cli"
	if envutil.Bool("EDUADMIN_VERBOSE", false) {
		mode = cfg.Env
	}
	log, err := logger.New(mode)
	errAndDie(err)
	defer log.Sync()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	otelStop := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.OTel.ServiceName + "-cli",
		Environment: cfg.Env,
		Version:     cfg.OTel.Version,
	})
	defer func() { _ = otelStop(context.Background()) }()

	tokens, err := openTokenStore(ctx, cfg)
	errAndDie(err)
	if c, ok := tokens.(io.Closer); ok {
		defer c.Close()
	}

	cli, err := newCommandLine(cfg, log, tokens, os.Stdout)
	errAndDie(err)
	if _, err := cli.session.Restore(ctx); err != nil {
		log.Warn("restore session failed", "error", err)
	}

	if err := cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintln(os.Stderr, render.Error(err))
		}
		stop()
		os.Exit(1)
	}
}

func openTokenStore(ctx context.Context, cfg *config.Config) (session.TokenStore, error) {
	switch cfg.Session.Store {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		return session.NewRedisStore(ctx, cfg.Session.RedisAddr, cfg.Session.RedisKey, cfg.DevAPI.TokenTTL.Duration)
	default:
		return session.NewFileStore(cfg.Session.FilePath)
	}
}

func errAndDie(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
