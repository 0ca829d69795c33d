// Package service orchestrates transaction form submissions: the server-side
// rule check, the CRM event and deal note, and the form store.
package service

import (
	"context"
	"fmt"
	"strings"

	"transaction_form/internal/events"
	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/ports"
	"transaction_form/internal/transactions/transport"
	"transaction_form/platform/apperr"
	"transaction_form/platform/logger"
	"transaction_form/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgSubmitted     = "Transaction submitted successfully"
	msgSubmitFailed  = "Failed to submit transaction"
	msgPairRequired  = "Both buyerOrSeller and transactionType are required"
	msgInvalidFormID = "invalid form id"
	msgFormNotFound  = "Form not found"
)

// Service handles the transactions use cases.
type Service struct {
	crm   ports.CRMGateway
	store ports.FormStore
	retry ports.NoteRetryScheduler
	bus   events.Bus
	log   *logger.Logger
}

// Option configures optional collaborators.
type Option func(*Service)

// WithFormStore persists accepted submissions.
func WithFormStore(store ports.FormStore) Option {
	return func(s *Service) { s.store = store }
}

// WithNoteRetry queues deal notes the CRM refused.
func WithNoteRetry(retry ports.NoteRetryScheduler) Option {
	return func(s *Service) { s.retry = retry }
}

// WithEventBus publishes TransactionSubmitted after each accepted submission.
func WithEventBus(bus events.Bus) Option {
	return func(s *Service) { s.bus = bus }
}

// New creates the service around the CRM gateway.
func New(crm ports.CRMGateway, log *logger.Logger, opts ...Option) *Service {
	s := &Service{crm: crm, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs one submission: Received, then Rejected or Validated; a
// validated submission becomes Failed if the CRM event cannot be created and
// Completed otherwise. A refused deal note does not fail the submission.
func (s *Service) Submit(ctx context.Context, sub domain.Submission) (transport.SubmissionResult, error) {
	log := s.log.WithContext(ctx)
	sub.ClientName = sanitize.Text(sub.ClientName)

	if errs := domain.Validate(sub); len(errs) > 0 {
		log.SubmissionEvent("rejected", sub.AgentID, sub.DealID, "reason", errs[0].Message)
		return transport.SubmissionResult{}, apperr.Validation(errs[0].Message).WithDetails(errs)
	}

	first, last := sanitize.SplitName(sub.ClientName)
	eventID, err := s.crm.CreateEvent(ctx, ports.EventInput{
		Source:          domain.EventSource,
		Type:            domain.EventType,
		Message:         domain.EventMessage(sub),
		DealID:          sub.DealID,
		AgentID:         sub.AgentID,
		PersonFirstName: first,
		PersonLastName:  last,
	})
	if err != nil {
		log.SubmissionEvent("failed", sub.AgentID, sub.DealID, "error", err.Error())
		if _, ok := apperr.As(err); ok {
			return transport.SubmissionResult{}, err
		}
		return transport.SubmissionResult{}, apperr.Upstream(msgSubmitFailed, err)
	}

	noteText := domain.NoteText(sub)
	noteErr := s.crm.AddDealNote(ctx, sub.DealID, noteText, sub.AgentID)
	if noteErr != nil {
		log.Warn("deal note failed", "deal_id", sub.DealID, "error", noteErr)
	}

	formID := s.persist(ctx, sub, eventID)

	if noteErr != nil {
		s.scheduleNoteRetry(ctx, ports.NoteRetry{
			DealID:  sub.DealID,
			AgentID: sub.AgentID,
			Text:    noteText,
			FormID:  formIDString(formID),
		})
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.TransactionSubmitted{
			BaseEvent:       events.NewBaseEvent(),
			FormID:          formID,
			TransactionID:   eventID,
			AgentID:         sub.AgentID,
			DealID:          sub.DealID,
			ClientName:      sub.ClientName,
			Category:        string(sub.Category),
			TransactionType: string(sub.Kind),
			ListingType:     string(sub.ListingKind),
			NoteAttached:    noteErr == nil,
		})
	}

	log.SubmissionEvent("completed", sub.AgentID, sub.DealID,
		"transaction_id", eventID,
		"note_attached", noteErr == nil,
	)

	return transport.SubmissionResult{
		TransactionID: eventID,
		Message:       msgSubmitted,
		FormID:        formIDString(formID),
		NoteAttached:  noteErr == nil,
	}, nil
}

func (s *Service) persist(ctx context.Context, sub domain.Submission, eventID string) uuid.UUID {
	if s.store == nil {
		return uuid.Nil
	}
	rec, err := s.store.Create(ctx, ports.NewFormRecord{Submission: sub, EventID: eventID})
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("create form record", err)
		return uuid.Nil
	}
	return rec.ID
}

func (s *Service) scheduleNoteRetry(ctx context.Context, retry ports.NoteRetry) {
	if s.retry == nil {
		return
	}
	if err := s.retry.ScheduleNoteRetry(ctx, retry); err != nil {
		s.log.WithContext(ctx).Error("schedule deal note retry failed", "deal_id", retry.DealID, "error", err)
		return
	}
	s.log.WithContext(ctx).Info("deal note retry scheduled", "deal_id", retry.DealID)
}

// ListAgents returns the CRM agents for the agent select.
func (s *Service) ListAgents(ctx context.Context) ([]ports.Agent, error) {
	return s.crm.ListAgents(ctx)
}

// ListDeals returns the agent's deals for a valid category/kind pair. The CRM
// is not called for a missing or invalid pair.
func (s *Service) ListDeals(ctx context.Context, q transport.DealsQuery) ([]ports.Deal, error) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(q.BuyerOrSeller)))
	kind := domain.Kind(strings.ToLower(strings.TrimSpace(q.TransactionType)))

	if category == "" || kind == "" {
		return nil, apperr.Validation(msgPairRequired)
	}
	if !domain.IsValidCombination(category, kind) {
		return nil, apperr.Validation(fmt.Sprintf("Invalid combination: %s with %s", category, kind))
	}

	return s.crm.ListDeals(ctx, category, kind, strings.TrimSpace(q.AgentID))
}

// GetLead returns a CRM contact for prefilling the form.
func (s *Service) GetLead(ctx context.Context, personID string) (ports.Lead, error) {
	return s.crm.GetLead(ctx, personID)
}

// ListForms returns stored submissions, newest first.
func (s *Service) ListForms(ctx context.Context) ([]ports.FormRecord, error) {
	if s.store == nil {
		return []ports.FormRecord{}, nil
	}
	return s.store.ListAll(ctx)
}

// GetForm returns one stored submission.
func (s *Service) GetForm(ctx context.Context, rawID string) (ports.FormRecord, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return ports.FormRecord{}, apperr.BadRequest(msgInvalidFormID)
	}
	if s.store == nil {
		return ports.FormRecord{}, apperr.NotFound(msgFormNotFound)
	}
	return s.store.GetByID(ctx, id)
}

func formIDString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
