package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskhub-server/configs"
	httpEngine "taskhub-server/internal/app/http"
	"taskhub-server/internal/repositories"
	"taskhub-server/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", "", "Path to config file (short)")
	flag.StringVar(&configPath, "config", "", "Path to config file (long)")
	flag.Parse()

	if configPath != "" {
		os.Setenv("CONFIG_PATH", configPath)
	}

	if err := configs.Init(&configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logConfig := logger.Config{
		Level:  configs.Configs.Logs.LogLevel,
		Format: configs.Configs.Logs.LogFormat,
	}
	if configs.Configs.Logs.StdoutOnly {
		logConfig.Output = "stdout"
	} else {
		logConfig.Output = "file"
		logConfig.FilePath = configs.Configs.Logs.LogPath
	}

	log, err := logger.NewZapLogger(logConfig)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Configuration loaded.",
		zap.String("configPath", configPath),
	)

	if err := repositories.Init(log); err != nil {
		log.Fatal("Failed to initialize data stores", zap.Error(err))
	}

	httpServer := httpEngine.NewServer(log)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server shutdown gracefully")
	}

	log.Info("Server exited")
}
