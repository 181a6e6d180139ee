// Command server runs the forecast HTTP service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"pullcast/internal/api"
	"pullcast/internal/config"
)

type serverConfig struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ConfigDir       string        `env:"CONFIG_DIR"`
	WatchInterval   time.Duration `env:"WATCH_INTERVAL" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Debug           bool          `env:"DEBUG" envDefault:"false"`
}

func main() {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	log, err := buildLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	store := config.NewStore(cfg.ConfigDir)
	if cfg.ConfigDir != "" {
		watcher := config.NewWatcher(store, cfg.WatchInterval, log)
		watcher.Start()
		defer watcher.Stop()
		log.Info("watching pool overrides",
			zap.String("dir", cfg.ConfigDir),
			zap.Duration("interval", cfg.WatchInterval))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(store, log).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
