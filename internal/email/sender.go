package email

import "context"

// Receipt describes one accepted transaction form, as mailed to the agent.
type Receipt struct {
	AgentName       string
	ClientName      string
	BuyerOrSeller   string
	TransactionType string
	ListingType     string
	TransactionID   string
	DealID          string
	FormID          string
	NoteAttached    bool
}

type Sender interface {
	SendSubmissionReceipt(ctx context.Context, toEmail string, receipt Receipt) error
}

type NoopSender struct{}

func (NoopSender) SendSubmissionReceipt(ctx context.Context, toEmail string, receipt Receipt) error {
	return nil
}
