package domain

import "fmt"

const (
	// EventSource labels every CRM event created by the form.
	EventSource = "Transaction Form Widget"
	// EventType is the CRM event type of a form submission.
	EventType = "Transaction Form Submission"

	noListingKind = "n/a"
)

// KindLabel is the human-readable name of a transaction kind.
func KindLabel(k Kind) string {
	switch k {
	case KindBBA:
		return "Buyer Broker Agreement (BBA)"
	case KindLA:
		return "Listing Agreement (LA)"
	case KindUC:
		return "Under Contract (UC)"
	default:
		return string(k)
	}
}

// ListingKindLabel is the human-readable name of a listing kind.
func ListingKindLabel(l ListingKind) string {
	switch l {
	case ListingKindListing:
		return "Listing"
	case ListingKindLease:
		return "Lease"
	default:
		return string(l)
	}
}

// ConditionalMessage describes which CRM deals are offered for (c, k).
// Empty for pairs that are not a valid combination.
func ConditionalMessage(c Category, k Kind) string {
	switch {
	case c == CategoryBuyer && k == KindBBA:
		return "Showing FUB Deals for Buyer Applications"
	case c == CategoryBuyer && k == KindUC:
		return "Showing FUB Deals for Buyer Applications & BBA"
	case c == CategorySeller && k == KindLA:
		return "Showing FUB Deals for Seller Applications"
	case c == CategorySeller && k == KindUC:
		return "Showing FUB Deals for Seller Applications & LA"
	default:
		return ""
	}
}

func listingText(l ListingKind) string {
	if l == "" {
		return noListingKind
	}
	return string(l)
}

// EventMessage is the message attached to the CRM event for s.
func EventMessage(s Submission) string {
	return fmt.Sprintf("Client: %s, Type: %s, Transaction: %s, Listing: %s",
		s.ClientName, s.Category, s.Kind, listingText(s.ListingKind))
}

// NoteText is the body of the note attached to the submission's deal.
func NoteText(s Submission) string {
	return fmt.Sprintf("Transaction form submitted for %s. Type: %s, Transaction: %s, Listing: %s",
		s.ClientName, s.Category, s.Kind, listingText(s.ListingKind))
}
