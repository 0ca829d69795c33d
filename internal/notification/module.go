// Package notification sends notifications in response to domain events.
// Domain modules publish events and never talk to the mail provider directly.
package notification

import (
	"context"
	"strings"

	"transaction_form/internal/email"
	"transaction_form/internal/events"
	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/logger"

	"github.com/google/uuid"
)

// AgentDirectory resolves the agents a receipt can be mailed to.
type AgentDirectory interface {
	ListAgents(ctx context.Context) ([]ports.Agent, error)
}

// Module mails submission receipts to the agent who filed the form.
type Module struct {
	sender email.Sender
	agents AgentDirectory
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, agents AgentDirectory, log *logger.Logger) *Module {
	return &Module{sender: sender, agents: agents, log: log}
}

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.TransactionSubmitted{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.TransactionSubmitted:
		return m.handleTransactionSubmitted(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleTransactionSubmitted(ctx context.Context, e events.TransactionSubmitted) error {
	if _, noop := m.sender.(email.NoopSender); noop {
		return nil
	}

	agent, ok := m.findAgent(ctx, e.AgentID)
	if !ok || strings.TrimSpace(agent.Email) == "" {
		m.log.Debug("no agent email for receipt", "agent_id", e.AgentID)
		return nil
	}

	receipt := email.Receipt{
		AgentName:       agent.FirstName,
		ClientName:      e.ClientName,
		BuyerOrSeller:   categoryLabel(domain.Category(e.Category)),
		TransactionType: domain.KindLabel(domain.Kind(e.TransactionType)),
		TransactionID:   e.TransactionID,
		DealID:          e.DealID,
		NoteAttached:    e.NoteAttached,
	}
	if e.ListingType != "" {
		receipt.ListingType = domain.ListingKindLabel(domain.ListingKind(e.ListingType))
	}
	if e.FormID != uuid.Nil {
		receipt.FormID = e.FormID.String()
	}

	if err := m.sender.SendSubmissionReceipt(ctx, agent.Email, receipt); err != nil {
		m.log.Error("failed to send submission receipt", "agent_id", e.AgentID, "deal_id", e.DealID, "error", err)
		return err
	}
	m.log.Info("submission receipt sent", "agent_id", e.AgentID, "deal_id", e.DealID)
	return nil
}

func (m *Module) findAgent(ctx context.Context, agentID string) (ports.Agent, bool) {
	if m.agents == nil || agentID == "" {
		return ports.Agent{}, false
	}
	agents, err := m.agents.ListAgents(ctx)
	if err != nil {
		m.log.Warn("agent lookup for receipt failed", "agent_id", agentID, "error", err)
		return ports.Agent{}, false
	}
	for _, a := range agents {
		if a.ID == agentID {
			return a, true
		}
	}
	return ports.Agent{}, false
}

func categoryLabel(c domain.Category) string {
	switch c {
	case domain.CategoryBuyer:
		return "Buyer"
	case domain.CategorySeller:
		return "Seller"
	default:
		return string(c)
	}
}
