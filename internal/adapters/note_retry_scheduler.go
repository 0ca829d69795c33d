package adapters

import (
	"context"

	"transaction_form/internal/scheduler"
	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/ports"
)

// NoteRetryScheduler adapts the asynq client to transactions/ports.NoteRetryScheduler.
type NoteRetryScheduler struct {
	client *scheduler.Client
}

// NewNoteRetryScheduler returns nil when client is nil, so the orchestrator
// only logs failed notes.
func NewNoteRetryScheduler(client *scheduler.Client) *NoteRetryScheduler {
	if client == nil {
		return nil
	}
	return &NoteRetryScheduler{client: client}
}

func (s *NoteRetryScheduler) ScheduleNoteRetry(ctx context.Context, retry ports.NoteRetry) error {
	if s == nil {
		return nil
	}
	dealID, err := parseOptionalID(domain.FieldDealID, retry.DealID)
	if err != nil {
		return err
	}
	agentID, err := parseOptionalID(domain.FieldAgentID, retry.AgentID)
	if err != nil {
		return err
	}

	return s.client.ScheduleDealNoteRetry(ctx, scheduler.DealNoteRetryPayload{
		DealID:  dealID,
		AgentID: agentID,
		Body:    retry.Text,
		FormID:  retry.FormID,
	})
}
