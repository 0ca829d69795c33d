// Package events declares the domain events modules publish to each other.
// The bus itself lives in platform/events and is aliased here so modules
// import a single package.
package events

import (
	"transaction_form/platform/events"
	"transaction_form/platform/logger"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates the process-local bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Transaction Domain Events
// =============================================================================

// TransactionSubmitted is published after a submission was recorded in the CRM.
// FormID is uuid.Nil when the form store failed to persist the record.
type TransactionSubmitted struct {
	BaseEvent
	FormID          uuid.UUID `json:"formId"`
	TransactionID   string    `json:"transactionId,omitempty"`
	AgentID         string    `json:"agentId"`
	DealID          string    `json:"dealId"`
	ClientName      string    `json:"clientName"`
	Category        string    `json:"buyerOrSeller"`
	TransactionType string    `json:"transactionType"`
	ListingType     string    `json:"listingType,omitempty"`
	NoteAttached    bool      `json:"noteAttached"`
}

func (e TransactionSubmitted) EventName() string { return "transactions.submitted" }
