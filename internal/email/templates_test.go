package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	html, err := renderReceipt(Receipt{
		AgentName:       "Ana",
		ClientName:      "Jane <Doe>",
		BuyerOrSeller:   "Seller",
		TransactionType: "Listing Agreement",
		ListingType:     "Listing",
		TransactionID:   "555",
		DealID:          "12",
		NoteAttached:    false,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Ana,")
	assert.Contains(t, html, "Jane &lt;Doe&gt;")
	assert.Contains(t, html, "Listing Agreement")
	assert.Contains(t, html, "retried automatically")
	assert.NotContains(t, html, "Form reference")
}

func TestRenderReceiptWithNote(t *testing.T) {
	html, err := renderReceipt(Receipt{ClientName: "Jane Doe", FormID: "abc", NoteAttached: true})
	require.NoError(t, err)

	assert.Contains(t, html, "Hi there,")
	assert.Contains(t, html, "Form reference")
	assert.NotContains(t, html, "retried automatically")
}

func TestNewSenderWithoutSMTPIsNoop(t *testing.T) {
	_, ok := NewSender(stubSMTP{}).(NoopSender)
	assert.True(t, ok)
}

type stubSMTP struct{ host string }

func (s stubSMTP) GetSMTPHost() string         { return s.host }
func (s stubSMTP) GetSMTPPort() int            { return 587 }
func (s stubSMTP) GetSMTPUsername() string     { return "" }
func (s stubSMTP) GetSMTPPassword() string     { return "" }
func (s stubSMTP) GetEmailFromName() string    { return "Forms" }
func (s stubSMTP) GetEmailFromAddress() string { return "forms@example.com" }
func (s stubSMTP) IsEmailEnabled() bool        { return s.host != "" }
