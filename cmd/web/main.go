package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arbicalc/internal/app/webserver"
	"arbicalc/internal/config"
	"arbicalc/internal/logger"
	"arbicalc/internal/pkg/grpcserver"
)

func main() {
	cfg, warns := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	for _, w := range warns {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := webserver.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("build server")
		os.Exit(1)
	}
	defer cleanup()

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	var grpcSrv *grpcserver.Server
	if cfg.GRPCAddr != "" {
		grpcSrv = grpcserver.New(cfg.GRPCAddr)
		go func() {
			log.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC health listening")
			if err := grpcSrv.Start(); err != nil {
				log.Error().Err(err).Msg("grpc server stopped")
				stop()
			}
		}()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if grpcSrv != nil {
		grpcSrv.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	} else {
		log.Info().Msg("server stopped gracefully")
	}
}
