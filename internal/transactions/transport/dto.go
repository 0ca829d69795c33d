// Package transport holds the request and response shapes of the transactions API.
package transport

import (
	"strings"

	"transaction_form/internal/transactions/domain"
	"transaction_form/platform/sanitize"
	"transaction_form/platform/validator"
)

// SubmitTransactionRequest is the body of POST /api/transactions.
type SubmitTransactionRequest struct {
	AgentID         string `json:"agentId" validate:"required,numeric"`
	ClientName      string `json:"clientName" validate:"required,min=2,max=100"`
	BuyerOrSeller   string `json:"buyerOrSeller" validate:"required,oneof=buyer seller"`
	TransactionType string `json:"transactionType" validate:"required,oneof=bba la uc"`
	ListingType     string `json:"listingType" validate:"omitempty,oneof=listing lease"`
	FubDealID       string `json:"fubDealId" validate:"required,numeric"`
}

// Normalize trims every field in place and strips markup from the client
// name, so length checks see the name that reaches the CRM.
func (r *SubmitTransactionRequest) Normalize() {
	r.AgentID = strings.TrimSpace(r.AgentID)
	r.ClientName = strings.TrimSpace(sanitize.Text(r.ClientName))
	r.BuyerOrSeller = strings.ToLower(strings.TrimSpace(r.BuyerOrSeller))
	r.TransactionType = strings.ToLower(strings.TrimSpace(r.TransactionType))
	r.ListingType = strings.ToLower(strings.TrimSpace(r.ListingType))
	r.FubDealID = strings.TrimSpace(r.FubDealID)
}

// Submission converts the request into the domain value.
func (r SubmitTransactionRequest) Submission() domain.Submission {
	return domain.Submission{
		AgentID:     r.AgentID,
		ClientName:  r.ClientName,
		Category:    domain.Category(r.BuyerOrSeller),
		Kind:        domain.Kind(r.TransactionType),
		ListingKind: domain.ListingKind(r.ListingType),
		DealID:      r.FubDealID,
	}
}

// SubmissionResult is the data of a successful submission.
type SubmissionResult struct {
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message"`
	FormID        string `json:"formId,omitempty"`
	NoteAttached  bool   `json:"noteAttached"`
}

// DealsQuery is the query of GET /api/deals.
type DealsQuery struct {
	BuyerOrSeller   string `form:"buyerOrSeller"`
	TransactionType string `form:"transactionType"`
	AgentID         string `form:"agentId"`
}

var fieldMessages = map[string]map[string]string{
	domain.FieldAgentID: {
		"":        "Please select an agent",
		"numeric": "Agent must be a Follow Up Boss user id",
	},
	domain.FieldClientName: {
		"":    "Client name is required",
		"min": "Client name must be at least 2 characters",
		"max": "Client name must be at most 100 characters",
	},
	domain.FieldCategory: {
		"": "Please select buyer or seller",
	},
	domain.FieldKind: {
		"": "Please select a transaction type",
	},
	domain.FieldListingKind: {
		"": "Listing type must be listing or lease",
	},
	domain.FieldDealID: {
		"":        "Please select a FUB deal",
		"numeric": "FUB deal must be a Follow Up Boss deal id",
	},
}

// FieldErrors turns validator violations into user-facing field errors,
// one per field.
func FieldErrors(violations []validator.FieldViolation) []domain.FieldError {
	seen := make(map[string]bool, len(violations))
	out := make([]domain.FieldError, 0, len(violations))
	for _, v := range violations {
		if seen[v.Field] {
			continue
		}
		seen[v.Field] = true

		msgs := fieldMessages[v.Field]
		msg, ok := msgs[v.Tag]
		if !ok {
			msg, ok = msgs[""]
		}
		if !ok {
			msg = v.Field + " is invalid"
		}
		out = append(out, domain.FieldError{Field: v.Field, Message: msg})
	}
	return out
}

// MergeFieldErrors appends the errors of extra whose field is not already in base.
func MergeFieldErrors(base, extra []domain.FieldError) []domain.FieldError {
	seen := make(map[string]bool, len(base))
	for _, fe := range base {
		seen[fe.Field] = true
	}
	for _, fe := range extra {
		if !seen[fe.Field] {
			base = append(base, fe)
			seen[fe.Field] = true
		}
	}
	return base
}
