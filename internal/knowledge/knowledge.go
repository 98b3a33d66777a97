// Package knowledge holds the hand-curated safety and product-matching tables
// consulted by risk stratification and the protocol engine.
//
// A Base is read-only once built. Callers share one instance across requests
// and never modify its slices or maps in place.
package knowledge

// Product is an immutable catalog entry. Its identity is Name.
type Product struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Mechanism   string   `json:"mechanism" yaml:"mechanism"`
	Benefits    []string `json:"benefits" yaml:"benefits"`
}

type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
)

// Protocol bundles a core product with a synergistic catalyst for a set of goals.
type Protocol struct {
	Name             string     `json:"name"`
	Core             Product    `json:"core"`
	Catalyst         Product    `json:"catalyst"`
	Foundation       *Product   `json:"foundation,omitempty"`
	SynergyReason    string     `json:"synergyReason"`
	MechanisticBasis string     `json:"mechanisticBasis"`
	TargetGoals      []string   `json:"targetGoals"`
	Confidence       Confidence `json:"confidence"`
}

// Targets reports whether goal is one of the protocol's target goals.
func (p Protocol) Targets(goal string) bool {
	for _, g := range p.TargetGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Benefits = cloneStrings(p.Benefits)
	return p
}

// Clone returns a deep copy of p, including its products and goals.
func (p Protocol) Clone() Protocol {
	p.Core = p.Core.Clone()
	p.Catalyst = p.Catalyst.Clone()
	if p.Foundation != nil {
		f := p.Foundation.Clone()
		p.Foundation = &f
	}
	p.TargetGoals = cloneStrings(p.TargetGoals)
	return p
}

// InteractionRule maps a lower-case drug token to the products it rules out.
type InteractionRule struct {
	Token    string   `json:"token" yaml:"token"`
	Products []string `json:"products" yaml:"products"`
}

// Base is the complete knowledge base. Interactions and Protocols are ordered:
// interaction order fixes warning order, protocol order is the goal tie-break.
type Base struct {
	Interactions     []InteractionRule
	HighRiskKeywords []string
	Products         map[string]Product
	Protocols        []Protocol
}

// InteractionTokens returns the interaction tokens in declaration order.
func (b *Base) InteractionTokens() []string {
	tokens := make([]string, 0, len(b.Interactions))
	for _, rule := range b.Interactions {
		tokens = append(tokens, rule.Token)
	}
	return tokens
}

// ExcludedBy returns the products mapped to token, or nil when the token is unknown.
func (b *Base) ExcludedBy(token string) []string {
	for _, rule := range b.Interactions {
		if rule.Token == token {
			return cloneStrings(rule.Products)
		}
	}
	return nil
}

// ProductByName finds a catalog product by display name.
func (b *Base) ProductByName(name string) (Product, bool) {
	for _, p := range b.Products {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	return Product{}, false
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
