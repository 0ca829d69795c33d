// Package fub provides the Follow Up Boss bounded context.
// This file defines the public interface exposed to other domains.
package fub

import (
	"context"

	"transaction_form/internal/fub/transport"
)

// CRM defines the public interface for Follow Up Boss access.
// Other domains should depend on this interface, not the concrete implementation.
type CRM interface {
	ListAgents(ctx context.Context) ([]transport.Agent, error)
	ListDeals(ctx context.Context, agentID int64) ([]transport.Deal, error)
	GetPerson(ctx context.Context, personID int64) (*transport.Person, error)
	CreateEvent(ctx context.Context, req transport.CreateEventRequest) (transport.CreateEventResult, error)
	AddDealNote(ctx context.Context, req transport.AddNoteRequest) error
	Ping(ctx context.Context) error
}
