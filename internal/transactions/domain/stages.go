package domain

import "strings"

// stageKeywords lists, per valid pair, the deal stage keywords a deal must
// match (in its stage or its name) to be offered on the form.
func stageKeywords(c Category, k Kind) []string {
	switch {
	case c == CategoryBuyer && k == KindBBA:
		return []string{"Buyer Application", "Application", "Lead"}
	case c == CategoryBuyer && k == KindUC:
		return []string{"Buyer Application", "Application", "BBA", "Under Contract", "Lead"}
	case c == CategorySeller && k == KindLA:
		return []string{"Seller Application", "Application", "Lead"}
	case c == CategorySeller && k == KindUC:
		return []string{"Seller Application", "Application", "LA", "Listing Agreement", "Under Contract", "Lead"}
	default:
		return nil
	}
}

// DealCandidate is the part of a CRM deal the stage filter looks at.
type DealCandidate struct {
	Stage  string
	Status string
	Name   string
}

// MatchesStage reports whether a deal fits (c, k) by case-insensitive
// substring match of any keyword against its stage or its name. A deal
// without a stage is matched on its status.
func MatchesStage(c Category, k Kind, d DealCandidate) bool {
	stage := d.Stage
	if stage == "" {
		stage = d.Status
	}
	stage = strings.ToLower(stage)
	name := strings.ToLower(d.Name)
	for _, kw := range stageKeywords(c, k) {
		kw = strings.ToLower(kw)
		if strings.Contains(stage, kw) || strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
