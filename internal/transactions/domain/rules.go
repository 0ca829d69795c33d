// Package domain holds the transaction form decision table: which transaction
// kinds a category allows, when a listing kind is required, and the texts
// derived from a submission. Everything here is pure and shared by the
// server-side check and the rendered form page.
package domain

import (
	"strings"
	"unicode/utf8"
)

// Client name length bounds, counted in characters after cleanup.
const (
	ClientNameMin = 2
	ClientNameMax = 100
)

// Category is the client's role in the transaction.
type Category string

// Kind is the transaction kind.
type Kind string

// ListingKind qualifies a seller's listing agreement.
type ListingKind string

const (
	CategoryBuyer  Category = "buyer"
	CategorySeller Category = "seller"
)

const (
	// KindBBA is a buyer broker agreement.
	KindBBA Kind = "bba"
	// KindLA is a listing agreement.
	KindLA Kind = "la"
	// KindUC is under contract.
	KindUC Kind = "uc"
)

const (
	ListingKindListing ListingKind = "listing"
	ListingKindLease   ListingKind = "lease"
)

// Field names, matching the JSON body of a submission.
const (
	FieldAgentID     = "agentId"
	FieldClientName  = "clientName"
	FieldCategory    = "buyerOrSeller"
	FieldKind        = "transactionType"
	FieldListingKind = "listingType"
	FieldDealID      = "fubDealId"
)

const (
	msgCategoryRequired    = "Please select buyer or seller"
	msgKindRequired        = "Please select a transaction type"
	msgBuyerKinds          = "Buyers can only have BBA or UC transaction types"
	msgSellerKinds         = "Sellers can only have LA or UC transaction types"
	msgListingKindRequired = "Listing type is required for listing agreements"
	msgListingKindInvalid  = "Listing type must be listing or lease"
	msgClientNameShort     = "Client name must be at least 2 characters"
	msgClientNameLong      = "Client name must be at most 100 characters"
)

// Submission is a transaction form as entered. It is a value: once accepted it
// is only ever copied, never modified.
type Submission struct {
	AgentID     string      `json:"agentId"`
	ClientName  string      `json:"clientName"`
	Category    Category    `json:"buyerOrSeller"`
	Kind        Kind        `json:"transactionType"`
	ListingKind ListingKind `json:"listingType,omitempty"`
	DealID      string      `json:"fubDealId"`
}

// FieldError attributes a validation failure to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule is one row of the decision table.
type Rule struct {
	Category               Category `json:"category"`
	AllowedKinds           []Kind   `json:"allowedKinds"`
	ListingKindRequiredFor []Kind   `json:"listingKindRequiredFor"`
	InvalidKindMessage     string   `json:"invalidKindMessage"`
}

var rules = []Rule{
	{
		Category:           CategoryBuyer,
		AllowedKinds:       []Kind{KindBBA, KindUC},
		InvalidKindMessage: msgBuyerKinds,
	},
	{
		Category:               CategorySeller,
		AllowedKinds:           []Kind{KindLA, KindUC},
		ListingKindRequiredFor: []Kind{KindLA},
		InvalidKindMessage:     msgSellerKinds,
	},
}

// Rules returns a copy of the decision table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Category:               r.Category,
			AllowedKinds:           append([]Kind(nil), r.AllowedKinds...),
			ListingKindRequiredFor: append([]Kind(nil), r.ListingKindRequiredFor...),
			InvalidKindMessage:     r.InvalidKindMessage,
		}
	}
	return out
}

// Categories lists every category in display order.
func Categories() []Category { return []Category{CategoryBuyer, CategorySeller} }

// Kinds lists every transaction kind in display order.
func Kinds() []Kind { return []Kind{KindBBA, KindLA, KindUC} }

// ListingKinds lists every listing kind in display order.
func ListingKinds() []ListingKind { return []ListingKind{ListingKindListing, ListingKindLease} }

func ruleFor(c Category) (Rule, bool) {
	for _, r := range rules {
		if r.Category == c {
			return r, true
		}
	}
	return Rule{}, false
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := ruleFor(c)
	return ok
}

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return containsKind(Kinds(), k)
}

// Valid reports whether l is a known listing kind.
func (l ListingKind) Valid() bool {
	return l == ListingKindListing || l == ListingKindLease
}

// AllowedKinds returns the kinds permitted for c, or nil for an unknown category.
func AllowedKinds(c Category) []Kind {
	r, ok := ruleFor(c)
	if !ok {
		return nil
	}
	return append([]Kind(nil), r.AllowedKinds...)
}

// IsValidCombination reports whether k is allowed for c.
func IsValidCombination(c Category, k Kind) bool {
	r, ok := ruleFor(c)
	return ok && containsKind(r.AllowedKinds, k)
}

// RequiresListingKind reports whether (c, k) needs a listing kind.
// Only seller + listing agreement does.
func RequiresListingKind(c Category, k Kind) bool {
	r, ok := ruleFor(c)
	return ok && containsKind(r.ListingKindRequiredFor, k)
}

// Validate applies the decision table to s and returns one error per failing
// field. An empty result means s is acceptable. Presence checks for agent
// and deal are done by the transport layer; the client name is checked here
// as well because it is only final once cleaned.
func Validate(s Submission) []FieldError {
	var errs []FieldError

	switch n := utf8.RuneCountInString(strings.TrimSpace(s.ClientName)); {
	case n < ClientNameMin:
		errs = append(errs, FieldError{Field: FieldClientName, Message: msgClientNameShort})
	case n > ClientNameMax:
		errs = append(errs, FieldError{Field: FieldClientName, Message: msgClientNameLong})
	}

	rule, categoryOK := ruleFor(s.Category)
	if !categoryOK {
		errs = append(errs, FieldError{Field: FieldCategory, Message: msgCategoryRequired})
	}

	switch {
	case !s.Kind.Valid():
		errs = append(errs, FieldError{Field: FieldKind, Message: msgKindRequired})
	case categoryOK && !containsKind(rule.AllowedKinds, s.Kind):
		errs = append(errs, FieldError{Field: FieldKind, Message: rule.InvalidKindMessage})
	}

	switch {
	case s.ListingKind != "" && !s.ListingKind.Valid():
		errs = append(errs, FieldError{Field: FieldListingKind, Message: msgListingKindInvalid})
	case s.ListingKind == "" && RequiresListingKind(s.Category, s.Kind):
		errs = append(errs, FieldError{Field: FieldListingKind, Message: msgListingKindRequired})
	}

	return errs
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}
