// Package service provides Follow Up Boss access with agent caching.
package service

import (
	"context"

	"transaction_form/internal/fub/transport"
	"transaction_form/platform/logger"

	"golang.org/x/sync/singleflight"
)

// API is the subset of the HTTP client the service uses.
type API interface {
	ListUsers(ctx context.Context) ([]transport.Agent, error)
	ListDeals(ctx context.Context, userID int64) ([]transport.Deal, error)
	GetPerson(ctx context.Context, personID int64) (*transport.Person, error)
	CreateEvent(ctx context.Context, req transport.CreateEventRequest) (transport.CreateEventResult, error)
	AddDealNote(ctx context.Context, req transport.AddNoteRequest) error
	Ping(ctx context.Context) error
}

// Service wraps the CRM API. Only the agent roster is cached; deals and
// contacts change too often.
type Service struct {
	api   API
	cache AgentCache
	group singleflight.Group
	log   *logger.Logger
}

// New creates the service. A nil cache disables caching.
func New(api API, cache AgentCache, log *logger.Logger) *Service {
	return &Service{api: api, cache: cache, log: log}
}

// ListAgents returns the roster, from cache when fresh. Concurrent misses
// share one CRM call. Cache failures fall through to the CRM.
func (s *Service) ListAgents(ctx context.Context) ([]transport.Agent, error) {
	if s.cache != nil {
		agents, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("agent cache read failed", "error", err)
		} else if ok {
			return agents, nil
		}
	}

	v, err, _ := s.group.Do("agents", func() (interface{}, error) {
		// Shared by every waiting caller; one caller leaving must not fail the rest.
		ctx := context.WithoutCancel(ctx)
		agents, err := s.api.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, agents); err != nil {
				s.log.Warn("agent cache write failed", "error", err)
			}
		}
		return agents, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]transport.Agent), nil
}

// ListDeals returns deals for the agent (all deals when agentID is zero).
func (s *Service) ListDeals(ctx context.Context, agentID int64) ([]transport.Deal, error) {
	return s.api.ListDeals(ctx, agentID)
}

// GetPerson fetches one contact.
func (s *Service) GetPerson(ctx context.Context, personID int64) (*transport.Person, error) {
	return s.api.GetPerson(ctx, personID)
}

// CreateEvent records an event in the CRM.
func (s *Service) CreateEvent(ctx context.Context, req transport.CreateEventRequest) (transport.CreateEventResult, error) {
	return s.api.CreateEvent(ctx, req)
}

// AddDealNote attaches a note to a deal.
func (s *Service) AddDealNote(ctx context.Context, req transport.AddNoteRequest) error {
	return s.api.AddDealNote(ctx, req)
}

// Ping checks the CRM credentials.
func (s *Service) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

// ClearCache drops the cached roster.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}
