package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/minitill/minitill/config"
	"github.com/minitill/minitill/internal/app"
	"github.com/minitill/minitill/internal/webserver"
)

func main() {
	configPath := flag.String("c", "path.ini", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minitill: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "minitill: init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	server := webserver.NewServer(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.L().Fatal("webserver stopped", zap.Error(err))
		}
	case sig := <-quit:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zap.L().Error("shutdown error", zap.Error(err))
		}
	}
}
