package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission(c Category, k Kind, l ListingKind) Submission {
	return Submission{
		AgentID:     "12",
		ClientName:  "John Smith",
		Category:    c,
		Kind:        k,
		ListingKind: l,
		DealID:      "345",
	}
}

func fieldsOf(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateAcceptsExactlyTheAllowedKinds(t *testing.T) {
	allowed := map[Category][]Kind{
		CategoryBuyer:  {KindBBA, KindUC},
		CategorySeller: {KindLA, KindUC},
	}

	for _, c := range Categories() {
		for _, k := range Kinds() {
			errs := Validate(validSubmission(c, k, ListingKindListing))
			want := containsKind(allowed[c], k)
			assert.Equal(t, want, len(errs) == 0, "%s/%s: %v", c, k, errs)
			assert.Equal(t, want, IsValidCombination(c, k), "%s/%s", c, k)
			if !want {
				assert.Equal(t, []string{FieldKind}, fieldsOf(errs), "%s/%s", c, k)
			}
		}
	}
}

func TestValidateBuyerWithListingAgreementIsKindError(t *testing.T) {
	errs := Validate(validSubmission(CategoryBuyer, KindLA, ""))
	require.Len(t, errs, 1)
	assert.Equal(t, FieldKind, errs[0].Field)
	assert.Equal(t, "Buyers can only have BBA or UC transaction types", errs[0].Message)
}

func TestValidateSellerWithBuyerAgreementIsKindError(t *testing.T) {
	errs := Validate(validSubmission(CategorySeller, KindBBA, ""))
	require.Len(t, errs, 1)
	assert.Equal(t, FieldKind, errs[0].Field)
	assert.Equal(t, "Sellers can only have LA or UC transaction types", errs[0].Message)
}

func TestValidateSellerListingAgreementNeedsListingKind(t *testing.T) {
	errs := Validate(validSubmission(CategorySeller, KindLA, ""))
	require.Len(t, errs, 1)
	assert.Equal(t, FieldListingKind, errs[0].Field)
	assert.Equal(t, "Listing type is required for listing agreements", errs[0].Message)

	assert.Empty(t, Validate(validSubmission(CategorySeller, KindLA, ListingKindLease)))
	assert.Empty(t, Validate(validSubmission(CategorySeller, KindLA, ListingKindListing)))
}

func TestValidateBuyerUnderContractNeverNeedsListingKind(t *testing.T) {
	for _, l := range []ListingKind{"", ListingKindListing, ListingKindLease} {
		assert.Empty(t, Validate(validSubmission(CategoryBuyer, KindUC, l)), "listing=%q", l)
	}
	assert.False(t, RequiresListingKind(CategoryBuyer, KindUC))
}

func TestValidateSellerUnderContractDoesNotNeedListingKind(t *testing.T) {
	assert.Empty(t, Validate(validSubmission(CategorySeller, KindUC, "")))
}

func TestValidateUnknownValues(t *testing.T) {
	errs := Validate(validSubmission("landlord", "rent", "sublet"))
	assert.ElementsMatch(t, []string{FieldCategory, FieldKind, FieldListingKind}, fieldsOf(errs))

	errs = Validate(validSubmission(CategoryBuyer, "", ""))
	assert.Equal(t, []string{FieldKind}, fieldsOf(errs))
	assert.Equal(t, "Please select a transaction type", errs[0].Message)
}

func TestRequiresListingKindOnlyForSellerListingAgreement(t *testing.T) {
	for _, c := range Categories() {
		for _, k := range Kinds() {
			want := c == CategorySeller && k == KindLA
			assert.Equal(t, want, RequiresListingKind(c, k), "%s/%s", c, k)
		}
	}
}

func TestRulesReturnsACopy(t *testing.T) {
	table := Rules()
	table[0].AllowedKinds[0] = "zz"
	assert.Equal(t, []Kind{KindBBA, KindUC}, AllowedKinds(CategoryBuyer))
	assert.Nil(t, AllowedKinds("nobody"))
}

func TestValidateClientNameLength(t *testing.T) {
	sub := validSubmission(CategoryBuyer, KindBBA, "")

	sub.ClientName = " J "
	errs := Validate(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldClientName, errs[0].Field)

	sub.ClientName = strings.Repeat("a", ClientNameMax+1)
	errs = Validate(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, "Client name must be at most 100 characters", errs[0].Message)

	sub.ClientName = "Jo"
	assert.Empty(t, Validate(sub))
}
