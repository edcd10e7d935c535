package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/osa911/teamchat/internal/config"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logging.InitLogger(logging.NewLogConfig(cfg.LogLevel, cfg.LogFile)); err != nil {
		panic(err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		logger.Error("Server stopped: %v", err)
		stop()
		logger.Close()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
