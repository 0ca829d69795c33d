// Package ports defines the interfaces the transactions domain requires from
// external systems. Adapters in internal/adapters implement them, so this
// domain never imports the CRM packages directly.
package ports

import (
	"context"

	"transaction_form/internal/transactions/domain"
)

// Agent is a CRM user who can own deals.
type Agent struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// Deal is a CRM deal offered for selection.
type Deal struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Stage  string `json:"stage,omitempty"`
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Lead is a CRM contact used to prefill the form.
type Lead struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// EventInput is what the orchestrator records for an accepted submission.
type EventInput struct {
	Source          string
	Type            string
	Message         string
	DealID          string
	AgentID         string
	PersonFirstName string
	PersonLastName  string
}

// CRMGateway is the CRM as the transactions domain sees it.
type CRMGateway interface {
	ListAgents(ctx context.Context) ([]Agent, error)
	// ListDeals returns deals for agentID (all deals when empty) that are
	// relevant to the category and kind.
	ListDeals(ctx context.Context, category domain.Category, kind domain.Kind, agentID string) ([]Deal, error)
	// CreateEvent returns the CRM-assigned identifier, which may be empty
	// when the CRM deduplicated the event.
	CreateEvent(ctx context.Context, input EventInput) (string, error)
	AddDealNote(ctx context.Context, dealID, text, agentID string) error
	GetLead(ctx context.Context, personID string) (Lead, error)
}

// NoteRetry is a deal note the CRM refused, queued for another attempt.
type NoteRetry struct {
	DealID  string
	AgentID string
	Text    string
	FormID  string
}

// NoteRetryScheduler queues deal notes for asynchronous retry.
type NoteRetryScheduler interface {
	ScheduleNoteRetry(ctx context.Context, retry NoteRetry) error
}
