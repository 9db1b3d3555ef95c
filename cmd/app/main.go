package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"arbicalc/internal/app/ratefeed"
	"arbicalc/internal/config"
	"arbicalc/internal/domain"
	"arbicalc/internal/logger"
	"arbicalc/internal/transport/cli"
	"arbicalc/internal/usecase"
	"arbicalc/internal/usecase/quotation"
)

func main() {
	cfg, warns := config.Load()
	// В терминале stdout занят диалогом, логи идут в stderr
	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel, true)
	for _, w := range warns {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := ratefeed.New(ctx, cfg, log, nil)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Ошибка настройки: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	flow := usecase.Flow{
		Rates:    svc,
		Prompt:   cli.NewPrompter(os.Stdin, os.Stdout),
		Quotes:   quotation.New(),
		Present:  cli.NewCLIPresenter(os.Stdout),
		Defaults: cfg.FormDefaults(),
	}
	if err := flow.Run(ctx); err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			_, _ = fmt.Fprintf(os.Stderr, "Ошибка выполнения: %v\n", err)
		}
		cleanup()
		os.Exit(1)
	}
}
