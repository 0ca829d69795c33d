package notification

import (
	"context"
	"errors"
	"testing"

	"transaction_form/internal/email"
	"transaction_form/internal/events"
	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSender struct {
	to       []string
	receipts []email.Receipt
	err      error
}

func (s *testSender) SendSubmissionReceipt(_ context.Context, toEmail string, receipt email.Receipt) error {
	s.to = append(s.to, toEmail)
	s.receipts = append(s.receipts, receipt)
	return s.err
}

type testDirectory struct {
	agents []ports.Agent
	err    error
}

func (d testDirectory) ListAgents(context.Context) ([]ports.Agent, error) {
	return d.agents, d.err
}

type countingDirectory struct {
	calls int
}

func (d *countingDirectory) ListAgents(context.Context) ([]ports.Agent, error) {
	d.calls++
	return []ports.Agent{{ID: "7", Email: "ana@example.com"}}, nil
}

func submitted() events.TransactionSubmitted {
	return events.TransactionSubmitted{
		BaseEvent:       events.NewBaseEvent(),
		FormID:          uuid.New(),
		TransactionID:   "555",
		AgentID:         "7",
		DealID:          "12",
		ClientName:      "Jane Doe",
		Category:        "seller",
		TransactionType: "la",
		ListingType:     "lease",
		NoteAttached:    true,
	}
}

func TestTransactionSubmittedSendsReceipt(t *testing.T) {
	sender := &testSender{}
	dir := testDirectory{agents: []ports.Agent{
		{ID: "3", FirstName: "Bo", Email: "bo@example.com"},
		{ID: "7", FirstName: "Ana", Email: "ana@example.com"},
	}}
	m := New(sender, dir, logger.Discard())

	e := submitted()
	require.NoError(t, m.Handle(context.Background(), e))

	require.Len(t, sender.receipts, 1)
	assert.Equal(t, "ana@example.com", sender.to[0])
	r := sender.receipts[0]
	assert.Equal(t, "Ana", r.AgentName)
	assert.Equal(t, "Seller", r.BuyerOrSeller)
	assert.Equal(t, "Listing Agreement (LA)", r.TransactionType)
	assert.Equal(t, "Lease", r.ListingType)
	assert.Equal(t, e.FormID.String(), r.FormID)
	assert.True(t, r.NoteAttached)
}

func TestTransactionSubmittedWithoutAgentEmail(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testDirectory{agents: []ports.Agent{{ID: "7", FirstName: "Ana"}}}, logger.Discard())
	require.NoError(t, m.Handle(context.Background(), submitted()))

	m = New(sender, testDirectory{err: errors.New("crm down")}, logger.Discard())
	require.NoError(t, m.Handle(context.Background(), submitted()))

	assert.Empty(t, sender.receipts)
}

func TestTransactionSubmittedOmitsMissingFormID(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testDirectory{agents: []ports.Agent{{ID: "7", Email: "ana@example.com"}}}, logger.Discard())

	e := submitted()
	e.FormID = uuid.Nil
	e.ListingType = ""
	require.NoError(t, m.Handle(context.Background(), e))

	require.Len(t, sender.receipts, 1)
	assert.Empty(t, sender.receipts[0].FormID)
	assert.Empty(t, sender.receipts[0].ListingType)
}

func TestSendFailureIsReturned(t *testing.T) {
	sender := &testSender{err: errors.New("smtp down")}
	m := New(sender, testDirectory{agents: []ports.Agent{{ID: "7", Email: "ana@example.com"}}}, logger.Discard())

	assert.Error(t, m.Handle(context.Background(), submitted()))
}

func TestRegisterHandlersSubscribesToSubmissions(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.Discard())
	m := New(sender, testDirectory{agents: []ports.Agent{{ID: "7", Email: "ana@example.com"}}}, logger.Discard())
	m.RegisterHandlers(bus)

	require.NoError(t, bus.PublishSync(context.Background(), submitted()))
	assert.Len(t, sender.receipts, 1)
}

func TestTransactionSubmittedWithoutSMTPSkipsAgentLookup(t *testing.T) {
	dir := &countingDirectory{}
	m := New(email.NoopSender{}, dir, logger.Discard())

	require.NoError(t, m.Handle(context.Background(), submitted()))
	assert.Zero(t, dir.calls)
}
