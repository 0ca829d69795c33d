package web

import (
	"strings"

	"transaction_form/internal/transactions/domain"
)

// Option is one entry of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormOptions tells the page which fields to show for the current selection.
type FormOptions struct {
	AllowedTransactionTypes []Option `json:"allowedTransactionTypes"`
	ShowListingType         bool     `json:"showListingType"`
	ShowDeals               bool     `json:"showDeals"`
	ConditionalMessage      string   `json:"conditionalMessage,omitempty"`
}

// OptionsFor derives the visible fields from a possibly partial selection.
func OptionsFor(rawCategory, rawKind string) FormOptions {
	c := domain.Category(strings.ToLower(strings.TrimSpace(rawCategory)))
	k := domain.Kind(strings.ToLower(strings.TrimSpace(rawKind)))

	opts := FormOptions{AllowedTransactionTypes: kindOptions(domain.AllowedKinds(c))}
	if !domain.IsValidCombination(c, k) {
		return opts
	}
	opts.ShowListingType = domain.RequiresListingKind(c, k)
	opts.ShowDeals = true
	opts.ConditionalMessage = domain.ConditionalMessage(c, k)
	return opts
}

func kindOptions(kinds []domain.Kind) []Option {
	out := make([]Option, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Option{Value: string(k), Label: domain.KindLabel(k)})
	}
	return out
}

func categoryOptions() []Option {
	return []Option{
		{Value: string(domain.CategoryBuyer), Label: "Buyer"},
		{Value: string(domain.CategorySeller), Label: "Seller"},
	}
}

func listingOptions() []Option {
	kinds := domain.ListingKinds()
	out := make([]Option, 0, len(kinds))
	for _, l := range kinds {
		out = append(out, Option{Value: string(l), Label: domain.ListingKindLabel(l)})
	}
	return out
}
