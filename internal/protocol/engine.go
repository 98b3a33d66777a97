// Package protocol selects a product protocol for a user's goal, prunes it
// against the risk assessment and derives the final recommendation.
package protocol

import (
	"fmt"

	"github.com/Skufu/protocolrx/internal/knowledge"
	"github.com/Skufu/protocolrx/internal/risk"
)

type MonetizationPath string

const (
	MonthlySubscription MonetizationPath = "monthly_subscription"
	PremiumProgram      MonetizationPath = "premium_program"
)

const ComplianceNote = "General wellness support only. Not intended to diagnose, treat, cure, or prevent any disease."

// ExcludedCatalyst returns the placeholder for a catalyst ruled out by a
// medication interaction.
func ExcludedCatalyst() knowledge.Product {
	return knowledge.Product{
		Name:        "Modified Protocol",
		Description: "Catalyst excluded due to medication interaction",
		Benefits:    []string{},
	}
}

// Recommendation is the terminal artifact handed back to the caller. A nil
// Protocol means no catalog entry serves the goal.
type Recommendation struct {
	Eligibility      risk.Eligibility    `json:"eligibility"`
	Goal             string              `json:"goal"`
	Protocol         *knowledge.Protocol `json:"protocol"`
	RiskAssessment   risk.Assessment     `json:"riskAssessment"`
	ComplianceNote   string              `json:"complianceNote"`
	MonetizationPath MonetizationPath    `json:"monetizationPath"`
	ReviewFlags      []string            `json:"reviewFlags,omitempty"`
}

type Engine struct {
	kb       *knowledge.Base
	assessor *risk.Assessor
}

func NewEngine(kb *knowledge.Base) *Engine {
	return &Engine{kb: kb, assessor: risk.NewAssessor(kb)}
}

var defaultEngine = NewEngine(knowledge.Default())

// Generate runs the default engine.
func Generate(p risk.Profile) Recommendation {
	return defaultEngine.Generate(p)
}

// Assess exposes the engine's risk assessor.
func (e *Engine) Assess(p risk.Profile) risk.Assessment {
	return e.assessor.Assess(p)
}

// Catalog returns a copy of the protocols in lookup order.
func (e *Engine) Catalog() []knowledge.Protocol {
	out := make([]knowledge.Protocol, 0, len(e.kb.Protocols))
	for _, p := range e.kb.Protocols {
		out = append(out, p.Clone())
	}
	return out
}

func (e *Engine) Generate(p risk.Profile) Recommendation {
	assessment := e.assessor.Assess(p)

	var selected *knowledge.Protocol
	var flags []string
	if base, ok := Lookup(e.kb, p.Goal); ok {
		pruned := pruneCatalyst(base, assessment, p.Goal)
		selected = &pruned
		if assessment.Excludes(base.Core.Name) {
			flags = append(flags, fmt.Sprintf("core product %s interacts with current medications; clinical review required before fulfilment", base.Core.Name))
		}
	}

	return Recommendation{
		Eligibility:      assessment.Eligibility,
		Goal:             p.Goal,
		Protocol:         selected,
		RiskAssessment:   assessment,
		ComplianceNote:   ComplianceNote,
		MonetizationPath: monetizationFor(assessment.Eligibility),
		ReviewFlags:      flags,
	}
}

// Lookup scans the catalog in declaration order; the first protocol targeting
// goal wins. The result is a copy detached from the catalog.
func Lookup(kb *knowledge.Base, goal string) (knowledge.Protocol, bool) {
	for _, p := range kb.Protocols {
		if p.Targets(goal) {
			return p.Clone(), true
		}
	}
	return knowledge.Protocol{}, false
}

// pruneCatalyst returns base unchanged or a new value with the catalyst
// replaced. base must already be detached from the catalog (see Lookup).
func pruneCatalyst(base knowledge.Protocol, a risk.Assessment, goal string) knowledge.Protocol {
	if !a.Excludes(base.Catalyst.Name) {
		return base
	}

	pruned := base
	pruned.Catalyst = ExcludedCatalyst()
	pruned.SynergyReason = fmt.Sprintf(
		"%s provides targeted support for your %s goal. The catalyst has been excluded due to potential interactions with your current medications.",
		base.Core.Name, goal,
	)
	return pruned
}

func monetizationFor(e risk.Eligibility) MonetizationPath {
	if e == risk.EligibilityPremiumRequired {
		return PremiumProgram
	}
	return MonthlySubscription
}
