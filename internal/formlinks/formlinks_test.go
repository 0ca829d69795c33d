package formlinks

import (
	"net/url"
	"strings"
	"testing"

	"transaction_form/internal/transactions/domain"
	"transaction_form/platform/apperr"
	"transaction_form/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput(c domain.Category, k domain.Kind) Input {
	return Input{
		Category:    c,
		Kind:        k,
		AgentFirst:  "John",
		AgentLast:   "Smith",
		AgentEmail:  "john@example.com",
		ClientFirst: "Jane",
		ClientLast:  "Doe",
		ClientEmail: "jane@example.com",
		ClientPhone: "(650) 253-0000",
	}
}

func parse(t *testing.T, link string) (*url.URL, url.Values) {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u, u.Query()
}

func TestBuildSellerListingAgreement(t *testing.T) {
	b := NewBuilder(&config.Config{})

	link, err := b.Build(sampleInput(domain.CategorySeller, domain.KindLA))
	require.NoError(t, err)

	u, q := parse(t, link)
	assert.True(t, strings.HasPrefix(link, DefaultSellerLAFormURL+"?"))
	assert.Equal(t, "secure.cannonteam.com", u.Host)
	assert.Equal(t, "John", q.Get("Name2_First"))
	assert.Equal(t, "Smith", q.Get("Name2_Last"))
	assert.Equal(t, "Jane", q.Get("Name_First"))
	assert.Equal(t, "Doe", q.Get("Name_Last"))
	assert.Equal(t, "john@example.com", q.Get("Email2"))
	assert.Equal(t, "jane@example.com", q.Get("Email"))
	assert.Equal(t, "+16502530000", q.Get("PhoneNumber1"))
}

func TestBuildBuyerBBADiffersFromSellerLA(t *testing.T) {
	b := NewBuilder(&config.Config{})

	seller, err := b.Build(sampleInput(domain.CategorySeller, domain.KindLA))
	require.NoError(t, err)
	buyer, err := b.Build(sampleInput(domain.CategoryBuyer, domain.KindBBA))
	require.NoError(t, err)
	assert.NotEqual(t, seller, buyer)

	_, q := parse(t, buyer)
	assert.True(t, strings.HasPrefix(buyer, DefaultBuyerBBAFormURL+"?"))
	assert.Equal(t, "John", q.Get("Name_First"))
	assert.Equal(t, "Jane", q.Get("Name1_First"))
	assert.Equal(t, "john@example.com", q.Get("Email2"))
	assert.Equal(t, "jane@example.com", q.Get("Email"))
	assert.Equal(t, "+16502530000", q.Get("PhoneNumber"))
}

func TestBuildBuyerUCSwapsEmailFields(t *testing.T) {
	link, err := NewBuilder(&config.Config{}).Build(sampleInput(domain.CategoryBuyer, domain.KindUC))
	require.NoError(t, err)

	_, q := parse(t, link)
	assert.Equal(t, "john@example.com", q.Get("Email"))
	assert.Equal(t, "jane@example.com", q.Get("Email1"))
}

func TestBuildSellerUnderContract(t *testing.T) {
	link, err := NewBuilder(&config.Config{}).Build(sampleInput(domain.CategorySeller, domain.KindUC))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, DefaultSellerUCFormURL+"?"))
}

func TestBuildUsesOverrides(t *testing.T) {
	cfg := &config.Config{ZohoBuyerBBAFormURL: "https://forms.example.com/bba?ref=widget"}

	link, err := NewBuilder(cfg).Build(sampleInput(domain.CategoryBuyer, domain.KindBBA))
	require.NoError(t, err)

	u, q := parse(t, link)
	assert.Equal(t, "forms.example.com", u.Host)
	assert.Equal(t, "widget", q.Get("ref"))
	assert.Equal(t, "Jane", q.Get("Name1_First"))
}

func TestBuildFailsClosedForUnmatchedPairs(t *testing.T) {
	b := NewBuilder(&config.Config{})

	pairs := []struct {
		c domain.Category
		k domain.Kind
	}{
		{domain.CategoryBuyer, domain.KindLA},
		{domain.CategorySeller, domain.KindBBA},
		{"", domain.KindUC},
		{domain.CategorySeller, ""},
		{"landlord", domain.KindLA},
	}
	for _, p := range pairs {
		link, err := b.Build(sampleInput(p.c, p.k))
		assert.Empty(t, link)
		assert.True(t, apperr.Is(err, apperr.KindBadRequest), "pair %s-%s", p.c, p.k)
	}
}

func TestBuildKeepsUnparseablePhone(t *testing.T) {
	in := sampleInput(domain.CategoryBuyer, domain.KindBBA)
	in.ClientPhone = " ext 12 "

	link, err := NewBuilder(&config.Config{}).Build(in)
	require.NoError(t, err)
	_, q := parse(t, link)
	assert.Equal(t, "ext 12", q.Get("PhoneNumber"))
}
