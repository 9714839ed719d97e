package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/eduadmin/internal/app"
	"github.com/yungbote/eduadmin/internal/config"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/platform/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.DevAPI.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to init app", "error", err)
	}
	defer a.Close()

	log.Info("Starting dev API", "addr", cfg.DevAPI.Addr, "db", cfg.DevAPI.DB.Driver)
	if err := a.Run(ctx); err != nil {
		log.Error("Server stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
	log.Info("Server stopped")
}
