// Package formlinks builds deep-links into the external Zoho forms an agent
// uses to start a new agreement or contract for a client.
package formlinks

import (
	"fmt"
	"net/url"
	"strings"

	"transaction_form/internal/transactions/domain"
	"transaction_form/platform/apperr"
	"transaction_form/platform/config"
	"transaction_form/platform/phone"
)

// Default form URLs, used when no override is configured.
const (
	DefaultBuyerBBAFormURL = "https://forms.zohopublic.com/CannonTeam/form/NewBBASubmission/formperma/Qm2AwO4xY7RPOIJ0Of_9k3gcV-dzHu32C7Vn3w5OH9g"
	DefaultBuyerUCFormURL  = "https://secure.cannonteam.com/CannonTeam/form/SubmitANewContract/formperma/9lTM0a8kzmi4iy6zuFQUVfhT0lfqnnOlbLH05fn_x1E"
	DefaultSellerLAFormURL = "https://secure.cannonteam.com/CannonTeam/form/SubmitANewListing/formperma/78JeD2bofmAdny2Oa57i0fpLQNhVmTkpOyop0eBp0ck"
	DefaultSellerUCFormURL = "https://secure.cannonteam.com/CannonTeam/form/SubmitANewLease/formperma/N9yiE4OPoXlb3WkOetjQdSPPdU7YTQMUbtZcaqTP0TU"
)

// Input carries the values injected into a form link.
type Input struct {
	Category    domain.Category
	Kind        domain.Kind
	AgentFirst  string
	AgentLast   string
	AgentEmail  string
	ClientFirst string
	ClientLast  string
	ClientEmail string
	ClientPhone string
}

// fieldNames maps the link values to one form's query parameters. Each form
// names its fields differently.
type fieldNames struct {
	agentFirst, agentLast   string
	clientFirst, clientLast string
	agentEmail, clientEmail string
	clientPhone             string
}

var (
	buyerBBAFields = fieldNames{
		agentFirst: "Name_First", agentLast: "Name_Last",
		clientFirst: "Name1_First", clientLast: "Name1_Last",
		agentEmail: "Email2", clientEmail: "Email",
		clientPhone: "PhoneNumber",
	}
	buyerUCFields = fieldNames{
		agentFirst: "Name_First", agentLast: "Name_Last",
		clientFirst: "Name1_First", clientLast: "Name1_Last",
		agentEmail: "Email", clientEmail: "Email1",
		clientPhone: "PhoneNumber",
	}
	sellerFields = fieldNames{
		agentFirst: "Name2_First", agentLast: "Name2_Last",
		clientFirst: "Name_First", clientLast: "Name_Last",
		agentEmail: "Email2", clientEmail: "Email",
		clientPhone: "PhoneNumber1",
	}
)

// Builder resolves the form URL for a category/kind pair.
type Builder struct {
	buyerBBA string
	buyerUC  string
	sellerLA string
	sellerUC string
	region   string
}

// NewBuilder creates a Builder, applying configured URL overrides.
func NewBuilder(cfg config.FormLinkConfig) *Builder {
	return &Builder{
		buyerBBA: orDefault(cfg.GetZohoBuyerBBAFormURL(), DefaultBuyerBBAFormURL),
		buyerUC:  orDefault(cfg.GetZohoBuyerUCFormURL(), DefaultBuyerUCFormURL),
		sellerLA: orDefault(cfg.GetZohoSellerLAFormURL(), DefaultSellerLAFormURL),
		sellerUC: orDefault(cfg.GetZohoSellerUCFormURL(), DefaultSellerUCFormURL),
		region:   cfg.GetPhoneRegion(),
	}
}

// Build returns the link for in. Pairs without a form are an
// apperr.BadRequest; no fallback link is ever produced.
func (b *Builder) Build(in Input) (string, error) {
	var base string
	var names fieldNames

	switch {
	case in.Category == domain.CategoryBuyer && in.Kind == domain.KindBBA:
		base, names = b.buyerBBA, buyerBBAFields
	case in.Category == domain.CategoryBuyer && in.Kind == domain.KindUC:
		base, names = b.buyerUC, buyerUCFields
	case in.Category == domain.CategorySeller && in.Kind == domain.KindLA:
		base, names = b.sellerLA, sellerFields
	case in.Category == domain.CategorySeller && in.Kind == domain.KindUC:
		base, names = b.sellerUC, sellerFields
	default:
		return "", apperr.BadRequest(fmt.Sprintf("No form available for %s with %s", in.Category, in.Kind))
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "invalid form URL", err)
	}

	q := u.Query()
	q.Set(names.agentFirst, strings.TrimSpace(in.AgentFirst))
	q.Set(names.agentLast, strings.TrimSpace(in.AgentLast))
	q.Set(names.clientFirst, strings.TrimSpace(in.ClientFirst))
	q.Set(names.clientLast, strings.TrimSpace(in.ClientLast))
	q.Set(names.agentEmail, strings.TrimSpace(in.AgentEmail))
	q.Set(names.clientEmail, strings.TrimSpace(in.ClientEmail))
	q.Set(names.clientPhone, phone.NormalizeE164(in.ClientPhone, b.region))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
