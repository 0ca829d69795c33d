package scheduler

import (
	"context"
	"errors"
	"testing"

	"transaction_form/internal/fub/transport"
	"transaction_form/platform/config"
	"transaction_form/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotes struct {
	calls []transport.AddNoteRequest
	err   error
}

func (f *fakeNotes) AddDealNote(_ context.Context, req transport.AddNoteRequest) error {
	f.calls = append(f.calls, req)
	return f.err
}

func TestHandleDealNoteRetry(t *testing.T) {
	notes := &fakeNotes{}
	w := &Worker{notes: notes, log: logger.Discard()}

	task, err := NewDealNoteRetryTask(DealNoteRetryPayload{DealID: 12, AgentID: 3, Body: "note", FormID: "f1"})
	require.NoError(t, err)

	require.NoError(t, w.handleDealNoteRetry(context.Background(), task))
	require.Len(t, notes.calls, 1)
	assert.Equal(t, transport.AddNoteRequest{DealID: 12, AgentID: 3, Body: "note"}, notes.calls[0])
}

func TestHandleDealNoteRetryPropagatesCRMError(t *testing.T) {
	notes := &fakeNotes{err: errors.New("503")}
	w := &Worker{notes: notes, log: logger.Discard()}

	task, err := NewDealNoteRetryTask(DealNoteRetryPayload{DealID: 12, Body: "note"})
	require.NoError(t, err)

	err = w.handleDealNoteRetry(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleDealNoteRetrySkipsBadPayload(t *testing.T) {
	w := &Worker{notes: &fakeNotes{}, log: logger.Discard()}

	err := w.handleDealNoteRetry(context.Background(), asynq.NewTask(TaskDealNoteRetry, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	task, err := NewDealNoteRetryTask(DealNoteRetryPayload{Body: "note"})
	require.NoError(t, err)
	err = w.handleDealNoteRetry(context.Background(), task)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestNewClientRequiresRedis(t *testing.T) {
	_, err := NewClient(&config.Config{})
	assert.Error(t, err)

	_, err = NewWorker(&config.Config{}, &fakeNotes{}, logger.Discard())
	assert.Error(t, err)
}

func TestNilClientIsNoop(t *testing.T) {
	var c *Client
	assert.NoError(t, c.ScheduleDealNoteRetry(context.Background(), DealNoteRetryPayload{DealID: 1}))
	assert.NoError(t, c.Close())
}
