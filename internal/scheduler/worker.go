package scheduler

import (
	"context"
	"fmt"

	"transaction_form/internal/fub/transport"
	"transaction_form/platform/config"
	"transaction_form/platform/logger"

	"github.com/hibiken/asynq"
)

// NoteSender attaches notes to CRM deals.
type NoteSender interface {
	AddDealNote(ctx context.Context, req transport.AddNoteRequest) error
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	notes  NoteSender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notes NoteSender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		notes:  notes,
		log:    log,
	}

	mux.HandleFunc(TaskDealNoteRetry, w.handleDealNoteRetry)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleDealNoteRetry returns the CRM error so asynq schedules the next attempt.
// Malformed payloads are skipped since retrying cannot fix them.
func (w *Worker) handleDealNoteRetry(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDealNoteRetryPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.DealID == 0 || payload.Body == "" {
		return fmt.Errorf("%w: deal note retry without deal or body", asynq.SkipRetry)
	}

	err = w.notes.AddDealNote(ctx, transport.AddNoteRequest{
		DealID:  payload.DealID,
		Body:    payload.Body,
		AgentID: payload.AgentID,
	})
	if err != nil {
		w.log.Warn("deal note retry failed", "deal_id", payload.DealID, "form_id", payload.FormID, "error", err)
		return err
	}

	w.log.Info("deal note attached on retry", "deal_id", payload.DealID, "form_id", payload.FormID)
	return nil
}
