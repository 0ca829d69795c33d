package adapters

import (
	"context"
	"strconv"
	"strings"

	"transaction_form/internal/fub"
	"transaction_form/internal/fub/transport"
	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/apperr"
)

// FUBGateway adapts the Follow Up Boss service for use by the transactions domain.
// It implements the transactions/ports.CRMGateway interface.
type FUBGateway struct {
	crm         fub.CRM
	stageFilter bool
}

// NewFUBGateway wraps the CRM. With stageFilter set, deals are narrowed to the
// stages relevant to the selected category and kind; otherwise the CRM's
// per-agent list is returned as is.
func NewFUBGateway(crm fub.CRM, stageFilter bool) *FUBGateway {
	return &FUBGateway{crm: crm, stageFilter: stageFilter}
}

func (g *FUBGateway) ListAgents(ctx context.Context) ([]ports.Agent, error) {
	agents, err := g.crm.ListAgents(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ports.Agent, 0, len(agents))
	for _, a := range agents {
		result = append(result, ports.Agent{
			ID:        formatID(a.ID),
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Email:     a.Email,
		})
	}
	return result, nil
}

func (g *FUBGateway) ListDeals(ctx context.Context, category domain.Category, kind domain.Kind, agentID string) ([]ports.Deal, error) {
	userID, err := parseOptionalID(domain.FieldAgentID, agentID)
	if err != nil {
		return nil, err
	}

	deals, err := g.crm.ListDeals(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]ports.Deal, 0, len(deals))
	for _, d := range deals {
		if g.stageFilter && !domain.MatchesStage(category, kind, domain.DealCandidate{Stage: d.Stage, Status: d.Status, Name: d.Name}) {
			continue
		}
		result = append(result, ports.Deal{
			ID:     formatID(d.ID),
			Name:   d.Name,
			Stage:  d.Stage,
			Status: d.Status,
			Type:   d.Type,
		})
	}
	return result, nil
}

func (g *FUBGateway) CreateEvent(ctx context.Context, input ports.EventInput) (string, error) {
	dealID, err := parseOptionalID(domain.FieldDealID, input.DealID)
	if err != nil {
		return "", err
	}
	agentID, err := parseOptionalID(domain.FieldAgentID, input.AgentID)
	if err != nil {
		return "", err
	}

	res, err := g.crm.CreateEvent(ctx, transport.CreateEventRequest{
		Source:  input.Source,
		Type:    input.Type,
		Message: input.Message,
		DealID:  dealID,
		AgentID: agentID,
		Person: transport.EventPerson{
			FirstName: input.PersonFirstName,
			LastName:  input.PersonLastName,
		},
	})
	if err != nil {
		return "", err
	}
	return formatID(res.ID), nil
}

func (g *FUBGateway) AddDealNote(ctx context.Context, dealID, text, agentID string) error {
	deal, err := parseOptionalID(domain.FieldDealID, dealID)
	if err != nil {
		return err
	}
	if deal == 0 {
		return apperr.BadRequest("fubDealId is required")
	}
	user, err := parseOptionalID(domain.FieldAgentID, agentID)
	if err != nil {
		return err
	}

	return g.crm.AddDealNote(ctx, transport.AddNoteRequest{DealID: deal, Body: text, AgentID: user})
}

func (g *FUBGateway) GetLead(ctx context.Context, personID string) (ports.Lead, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(personID), 10, 64)
	if err != nil || id <= 0 {
		return ports.Lead{}, apperr.BadRequest("personId must be a positive number")
	}

	person, err := g.crm.GetPerson(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return ports.Lead{}, apperr.NotFound("Lead not found")
		}
		return ports.Lead{}, err
	}

	return ports.Lead{
		ID:        formatID(person.ID),
		FirstName: person.FirstName,
		LastName:  person.LastName,
		Email:     person.Email,
		Phone:     person.Phone,
	}, nil
}

func parseOptionalID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, apperr.BadRequest(field + " must be numeric")
	}
	return id, nil
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
