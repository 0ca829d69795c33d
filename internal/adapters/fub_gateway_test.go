package adapters

import (
	"context"
	"testing"

	"transaction_form/internal/fub/transport"
	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCRM struct {
	deals       []transport.Deal
	dealsUserID int64
	event       transport.CreateEventRequest
	eventID     int64
	note        transport.AddNoteRequest
	personErr   error
}

func (f *fakeCRM) ListAgents(context.Context) ([]transport.Agent, error) {
	return []transport.Agent{{ID: 7, FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"}}, nil
}

func (f *fakeCRM) ListDeals(_ context.Context, agentID int64) ([]transport.Deal, error) {
	f.dealsUserID = agentID
	return f.deals, nil
}

func (f *fakeCRM) GetPerson(_ context.Context, id int64) (*transport.Person, error) {
	if f.personErr != nil {
		return nil, f.personErr
	}
	return &transport.Person{ID: id, FirstName: "Jane", LastName: "Doe", Phone: "555"}, nil
}

func (f *fakeCRM) CreateEvent(_ context.Context, req transport.CreateEventRequest) (transport.CreateEventResult, error) {
	f.event = req
	return transport.CreateEventResult{ID: f.eventID}, nil
}

func (f *fakeCRM) AddDealNote(_ context.Context, req transport.AddNoteRequest) error {
	f.note = req
	return nil
}

func (f *fakeCRM) Ping(context.Context) error { return nil }

var sampleDeals = []transport.Deal{
	{ID: 1, Name: "Smith purchase", Stage: "Buyer Application"},
	{ID: 2, Name: "Jones listing", Stage: "Seller Application"},
	{ID: 3, Name: "Old deal", Stage: "Closed"},
}

func TestListDealsUnfilteredByDefault(t *testing.T) {
	crm := &fakeCRM{deals: sampleDeals}
	g := NewFUBGateway(crm, false)

	deals, err := g.ListDeals(context.Background(), domain.CategoryBuyer, domain.KindBBA, "42")
	require.NoError(t, err)
	assert.Len(t, deals, 3)
	assert.Equal(t, int64(42), crm.dealsUserID)
	assert.Equal(t, "1", deals[0].ID)
}

func TestListDealsStageFilter(t *testing.T) {
	g := NewFUBGateway(&fakeCRM{deals: sampleDeals}, true)

	deals, err := g.ListDeals(context.Background(), domain.CategorySeller, domain.KindLA, "")
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "Jones listing", deals[0].Name)
}

func TestListDealsStageFilterFallsBackToStatus(t *testing.T) {
	crm := &fakeCRM{deals: []transport.Deal{
		{ID: 4, Name: "Brown", Status: "Lead"},
		{ID: 5, Name: "Green", Status: "Closed"},
	}}

	deals, err := NewFUBGateway(crm, true).ListDeals(context.Background(), domain.CategoryBuyer, domain.KindBBA, "")
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "4", deals[0].ID)
	assert.Equal(t, "Lead", deals[0].Status)
}

func TestListDealsRejectsNonNumericAgent(t *testing.T) {
	_, err := NewFUBGateway(&fakeCRM{}, false).ListDeals(context.Background(), domain.CategoryBuyer, domain.KindBBA, "abc")
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

func TestCreateEventMapsIDs(t *testing.T) {
	crm := &fakeCRM{eventID: 99}
	g := NewFUBGateway(crm, false)

	id, err := g.CreateEvent(context.Background(), ports.EventInput{
		Source: domain.EventSource, Type: domain.EventType, Message: "m",
		DealID: "12", AgentID: "7", PersonFirstName: "Jane", PersonLastName: "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "99", id)
	assert.Equal(t, int64(12), crm.event.DealID)
	assert.Equal(t, int64(7), crm.event.AgentID)
	assert.Equal(t, "Jane", crm.event.Person.FirstName)
}

func TestAddDealNoteRequiresDeal(t *testing.T) {
	crm := &fakeCRM{}
	g := NewFUBGateway(crm, false)

	assert.Error(t, g.AddDealNote(context.Background(), "", "text", "7"))

	require.NoError(t, g.AddDealNote(context.Background(), "12", "text", "7"))
	assert.Equal(t, transport.AddNoteRequest{DealID: 12, Body: "text", AgentID: 7}, crm.note)
}

func TestGetLead(t *testing.T) {
	g := NewFUBGateway(&fakeCRM{}, false)

	lead, err := g.GetLead(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, "8", lead.ID)
	assert.Equal(t, "Jane", lead.FirstName)

	_, err = g.GetLead(context.Background(), "x8")
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))

	g = NewFUBGateway(&fakeCRM{personErr: apperr.NotFound("not found")}, false)
	_, err = g.GetLead(context.Background(), "8")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	domainErr, _ := apperr.As(err)
	assert.Equal(t, "Lead not found", domainErr.Message)
}
