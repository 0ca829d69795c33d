package scheduler

import (
	"context"
	"fmt"
	"time"

	"transaction_form/platform/cache"
	"transaction_form/platform/config"

	"github.com/hibiken/asynq"
)

// noteRetryDelay is how long the first retry waits after the inline attempt failed.
const noteRetryDelay = 30 * time.Second

type Client struct {
	client   *asynq.Client
	queue    string
	maxRetry int
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client:   asynq.NewClient(opt),
		queue:    queueName(cfg),
		maxRetry: cfg.GetNoteRetryMax(),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleDealNoteRetry enqueues another attempt at attaching a deal note.
func (c *Client) ScheduleDealNoteRetry(ctx context.Context, payload DealNoteRetryPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewDealNoteRetryTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(noteRetryDelay),
		asynq.MaxRetry(c.maxRetry),
		asynq.Queue(c.queue),
	)
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := cache.ParseURL(redisURL, tlsInsecure)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
