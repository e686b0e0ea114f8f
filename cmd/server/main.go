// Command server runs the QRNG HTTP API backed by the local
// statevector simulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/qrng-backend/internal/config"
	"github.com/xtding233/qrng-backend/internal/server"
	"github.com/xtding233/qrng-backend/internal/sim"
	"github.com/xtding233/qrng-backend/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("QRNG_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Int("qubits", cfg.QRNG.Qubits).Msg("starting qrng backend")

	backend := sim.NewStatevector(nil)
	srv := server.New(cfg, log, backend)

	// hot-reload config on file change
	if *cfgPath != "" {
		watcher := config.NewWatcher(*cfgPath, 5*time.Second, func(path string) {
			next, err := config.Load(path)
			if err != nil {
				log.Error().Err(err).Msg("reload configuration")
				return
			}
			srv.SetConfig(next)
			log.Info().Str("path", path).Msg("configuration reloaded")
		})
		watcher.Start()
		defer watcher.Stop()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
