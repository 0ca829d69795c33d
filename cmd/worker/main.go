package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"transaction_form/internal/fub"
	"transaction_form/internal/scheduler"
	"transaction_form/platform/config"
	"transaction_form/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The worker only attaches notes, so the agent cache is never consulted.
	fubModule := fub.NewModule(cfg, nil, log)

	worker, err := scheduler.NewWorker(cfg, fubModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
