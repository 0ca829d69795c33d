package ports

import (
	"context"
	"time"

	"transaction_form/internal/transactions/domain"

	"github.com/google/uuid"
)

// FormRecord is an accepted submission as persisted by the form store.
type FormRecord struct {
	ID         uuid.UUID         `json:"id"`
	Submission domain.Submission `json:"submission"`
	EventID    string            `json:"eventId,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// NewFormRecord is the input to FormStore.Create; the store assigns ID and CreatedAt.
type NewFormRecord struct {
	Submission domain.Submission
	EventID    string
}

// FormStore persists accepted submissions. Records are immutable once created.
type FormStore interface {
	Create(ctx context.Context, rec NewFormRecord) (FormRecord, error)
	// GetByID returns an apperr.NotFound error for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (FormRecord, error)
	// ListAll returns every record, newest first.
	ListAll(ctx context.Context) ([]FormRecord, error)
}
