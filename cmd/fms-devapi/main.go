package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abubakar20-02/Flight-Management-System/internal/config"
	"github.com/abubakar20-02/Flight-Management-System/internal/devapi"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	h := devapi.NewHandler(devapi.NewStore(), log)
	r := devapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.DevAPI.Port),
		Handler:      r,
		ReadTimeout:  cfg.DevAPI.ReadTimeout,
		WriteTimeout: cfg.DevAPI.WriteTimeout,
		IdleTimeout:  cfg.DevAPI.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Dev API starting on port %d", cfg.DevAPI.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
