// Package risk converts a user health profile into a risk assessment using the
// knowledge base's interaction and high-risk condition tables.
package risk

import (
	"fmt"

	"github.com/Skufu/protocolrx/internal/knowledge"
)

type Eligibility string

const (
	EligibilityStandard        Eligibility = "standard"
	EligibilityModified        Eligibility = "modified"
	EligibilityPremiumRequired Eligibility = "premium_required"
)

const underageWarning = "Protocols for individuals under 18 require specialized assessment"

// maxAutomatedWarnings is the warning count above which a profile needs human review.
const maxAutomatedWarnings = 2

// Profile is the structured health profile supplied by the caller. It is never modified.
type Profile struct {
	Goal        string   `json:"goal" yaml:"goal"`
	Medications []string `json:"medications" yaml:"medications"`
	Conditions  []string `json:"conditions" yaml:"conditions"`
	Allergies   []string `json:"allergies" yaml:"allergies"`
	AgeOver18   bool     `json:"ageOver18" yaml:"ageOver18"`
}

// Assessment is derived fresh for every request.
type Assessment struct {
	Eligibility            Eligibility `json:"eligibility"`
	ExcludedProducts       []string    `json:"excludedProducts"`
	Warnings               []string    `json:"warnings"`
	RequiresHumanOversight bool        `json:"requiresHumanOversight"`
}

// Excludes reports whether product is in the excluded set.
func (a Assessment) Excludes(product string) bool {
	for _, p := range a.ExcludedProducts {
		if p == product {
			return true
		}
	}
	return false
}

// Assessor evaluates profiles against one knowledge base. It is safe for
// concurrent use.
type Assessor struct {
	kb         *knowledge.Base
	medicines  *knowledge.Matcher
	conditions *knowledge.Matcher
}

func NewAssessor(kb *knowledge.Base) *Assessor {
	return &Assessor{
		kb:         kb,
		medicines:  knowledge.NewMatcher(kb.InteractionTokens()...),
		conditions: knowledge.NewMatcher(kb.HighRiskKeywords...),
	}
}

// Assess is a convenience wrapper that builds an Assessor for a single call.
func Assess(kb *knowledge.Base, p Profile) Assessment {
	return NewAssessor(kb).Assess(p)
}

// Assess runs the age gate, the medication interaction scan and the high-risk
// condition scan, then derives eligibility.
func (a *Assessor) Assess(p Profile) Assessment {
	if !p.AgeOver18 {
		return Assessment{
			Eligibility:            EligibilityPremiumRequired,
			ExcludedProducts:       []string{},
			Warnings:               []string{underageWarning},
			RequiresHumanOversight: true,
		}
	}

	excluded := newProductSet()
	warnings := []string{}

	for _, med := range knowledge.NormalizeAll(p.Medications) {
		for _, token := range a.medicines.Match(med) {
			excluded.add(a.kb.ExcludedBy(token)...)
			warnings = append(warnings, fmt.Sprintf("Interaction detected: %s may interact with certain supplements", med))
		}
	}

	oversight := false
	entries := append(knowledge.NormalizeAll(p.Conditions), knowledge.NormalizeAll(p.Allergies)...)
	for _, entry := range entries {
		if a.conditions.Any(entry) {
			oversight = true
			warnings = append(warnings, fmt.Sprintf("Complex medical profile detected: %s", entry))
		}
	}

	return Assessment{
		Eligibility:            deriveEligibility(oversight, len(warnings), excluded.len()),
		ExcludedProducts:       excluded.items(),
		Warnings:               warnings,
		RequiresHumanOversight: oversight,
	}
}

// Oversight and warning volume dominate product exclusion.
func deriveEligibility(oversight bool, warnings, excluded int) Eligibility {
	switch {
	case oversight || warnings > maxAutomatedWarnings:
		return EligibilityPremiumRequired
	case excluded > 0:
		return EligibilityModified
	default:
		return EligibilityStandard
	}
}

// productSet keeps first-seen order so output is deterministic.
type productSet struct {
	seen  map[string]bool
	order []string
}

func newProductSet() *productSet {
	return &productSet{seen: map[string]bool{}, order: []string{}}
}

func (s *productSet) add(names ...string) {
	for _, n := range names {
		if s.seen[n] {
			continue
		}
		s.seen[n] = true
		s.order = append(s.order, n)
	}
}

func (s *productSet) len() int { return len(s.order) }

func (s *productSet) items() []string { return s.order }
