package services

import (
	"regexp"
	"strings"

	"github.com/cdsupport/poscan/internal/core/domain"
)

// priceThreshold is the unit price above which a PO always needs
// declaration support, in VND.
const priceThreshold = 30_000_000

var (
	tokenSplit  = regexp.MustCompile(`[/,;]`)
	ratePattern = regexp.MustCompile(`^\d{1,3}%$`)
)

// Classifier maps extracted fields to a declaration decision and resolves
// raw buyer text to a canonical entity.
type Classifier struct {
	exclusions domain.ExclusionSet
}

// NewClassifier creates a classifier over the given seller exclusion set.
// The set is shared by reference with every worker and must not change
// after construction.
func NewClassifier(exclusions domain.ExclusionSet) *Classifier {
	return &Classifier{exclusions: exclusions}
}

// ClassifyBuyer resolves the document's heading line to a canonical buyer
// entity via the ordered match list. Returns nil for unmatched text.
func (c *Classifier) ClassifyBuyer(raw string) *domain.Entity {
	return domain.MatchEntity(raw)
}

// Decide runs the decision tree over the extracted fields. Guards are
// evaluated top to bottom and the first match wins. The order is
// load-bearing and must not be rearranged: currency, VAT, unit UOM,
// seller exclusion, price threshold, piece/set UOM, then the default.
func (c *Classifier) Decide(f domain.Fields) domain.Decision {
	currency := strings.ToUpper(strings.TrimSpace(f.Currency))
	vat := strings.TrimSpace(f.VAT)
	uom := strings.ToUpper(strings.TrimSpace(f.UOM))
	seller := strings.TrimSpace(f.Seller)

	steps := []struct {
		guard   func() bool
		outcome domain.Decision
	}{
		{func() bool { return currency != "" && currency != "VND" }, domain.DecisionRequired},
		{func() bool { return allRatesNonZero(vat) }, domain.DecisionNotRequired},
		{func() bool { return uom == "UNIT" || uom == "UN" || uom == "UNT" }, domain.DecisionNotRequired},
		{func() bool { return seller != "" && c.exclusions.Contains(seller) }, domain.DecisionNotRequired},
		{func() bool { return f.MaxUnitPrice > priceThreshold }, domain.DecisionRequired},
		{func() bool { return !uomContainsAny(uom, "PIECE", "SET") }, domain.DecisionNotRequired},
	}

	for _, step := range steps {
		if step.guard() {
			return step.outcome
		}
	}
	return domain.DecisionRequired
}

// allRatesNonZero reports whether the VAT string splits into one or more
// well-formed rate tokens, none of which is 0%. Strings that do not parse
// into rates, including the Unknown sentinel, never satisfy it.
func allRatesNonZero(vat string) bool {
	tokens := splitTokens(vat)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !ratePattern.MatchString(tok) || tok == "0%" {
			return false
		}
	}
	return true
}

// uomContainsAny reports whether any UOM token equals one of the wanted
// units.
func uomContainsAny(uom string, wanted ...string) bool {
	for _, tok := range splitTokens(uom) {
		tok = strings.ToUpper(tok)
		for _, w := range wanted {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// splitTokens splits a slash, comma, or semicolon separated list into
// trimmed, non-empty tokens.
func splitTokens(s string) []string {
	var tokens []string
	for _, part := range tokenSplit.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}
