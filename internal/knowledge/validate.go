package knowledge

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of the tables: protocols target at
// least one goal, every referenced product exists in the catalog, and tokens
// are already normalized. All violations are reported together.
func (b *Base) Validate() error {
	if b == nil {
		return errors.New("knowledge base is nil")
	}

	var errs []error
	names := make(map[string]bool, len(b.Products))
	for key, p := range b.Products {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("product %q has no name", key))
			continue
		}
		names[p.Name] = true
	}

	seenTokens := make(map[string]bool, len(b.Interactions))
	for i, rule := range b.Interactions {
		if rule.Token == "" || rule.Token != Normalize(rule.Token) {
			errs = append(errs, fmt.Errorf("interaction %d: token %q is not normalized", i, rule.Token))
		}
		if seenTokens[rule.Token] {
			errs = append(errs, fmt.Errorf("interaction %d: duplicate token %q", i, rule.Token))
		}
		seenTokens[rule.Token] = true
		if len(rule.Products) == 0 {
			errs = append(errs, fmt.Errorf("interaction %q excludes no products", rule.Token))
		}
		for _, name := range rule.Products {
			if !names[name] {
				errs = append(errs, fmt.Errorf("interaction %q references unknown product %q", rule.Token, name))
			}
		}
	}

	for _, kw := range b.HighRiskKeywords {
		if kw == "" || kw != Normalize(kw) {
			errs = append(errs, fmt.Errorf("high-risk keyword %q is not normalized", kw))
		}
	}

	for i, p := range b.Protocols {
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
			errs = append(errs, fmt.Errorf("protocol %s has no name", label))
		}
		if len(p.TargetGoals) == 0 {
			errs = append(errs, fmt.Errorf("protocol %s has no target goals", label))
		}
		if !names[p.Core.Name] {
			errs = append(errs, fmt.Errorf("protocol %s: core product %q not in catalog", label, p.Core.Name))
		}
		if !names[p.Catalyst.Name] {
			errs = append(errs, fmt.Errorf("protocol %s: catalyst product %q not in catalog", label, p.Catalyst.Name))
		}
		if p.Foundation != nil && !names[p.Foundation.Name] {
			errs = append(errs, fmt.Errorf("protocol %s: foundation product %q not in catalog", label, p.Foundation.Name))
		}
		switch p.Confidence {
		case ConfidenceHigh, ConfidenceModerate:
		default:
			errs = append(errs, fmt.Errorf("protocol %s: unknown confidence %q", label, p.Confidence))
		}
	}

	return errors.Join(errs...)
}
