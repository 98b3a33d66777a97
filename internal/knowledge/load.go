package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlBase struct {
	Interactions     []InteractionRule  `yaml:"interactions"`
	HighRiskKeywords []string           `yaml:"highRiskKeywords"`
	Products         map[string]Product `yaml:"products"`
	Protocols        []yamlProtocol     `yaml:"protocols"`
}

// yamlProtocol refers to products by catalog key.
type yamlProtocol struct {
	Name             string   `yaml:"name"`
	Core             string   `yaml:"core"`
	Catalyst         string   `yaml:"catalyst"`
	Foundation       string   `yaml:"foundation"`
	SynergyReason    string   `yaml:"synergyReason"`
	MechanisticBasis string   `yaml:"mechanisticBasis"`
	TargetGoals      []string `yaml:"targetGoals"`
	Confidence       string   `yaml:"confidence"`
}

// Load reads a knowledge-base YAML document from path and validates it.
func Load(path string) (*Base, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpError{
			Op:   "knowledge.load",
			Kind: KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	base, err := Parse(b)
	if err != nil {
		if oe, ok := err.(*OpError); ok {
			oe.Path = path
			return nil, oe
		}
		return nil, err
	}
	return base, nil
}

// Parse decodes a knowledge-base YAML document, resolves product keys and
// validates the result.
func Parse(data []byte) (*Base, error) {
	var dto yamlBase
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, &OpError{Op: "knowledge.parse", Kind: KindInvalidConfig, Err: err}
	}

	base, err := mapBase(dto)
	if err != nil {
		return nil, &OpError{Op: "knowledge.parse", Kind: KindInvalidConfig, Err: err}
	}
	if err := base.Validate(); err != nil {
		return nil, &OpError{Op: "knowledge.validate", Kind: KindInvalidConfig, Err: err}
	}
	return base, nil
}

func mapBase(dto yamlBase) (*Base, error) {
	if len(dto.Products) == 0 {
		return nil, fmt.Errorf("%w: no products", ErrInvalidConfig)
	}

	rules := make([]InteractionRule, 0, len(dto.Interactions))
	for _, r := range dto.Interactions {
		rules = append(rules, InteractionRule{
			Token:    Normalize(r.Token),
			Products: r.Products,
		})
	}

	lookup := func(protocol, role, key string) (Product, error) {
		p, ok := dto.Products[key]
		if !ok {
			return Product{}, fmt.Errorf("%w: protocol %q %s references unknown product key %q", ErrInvalidConfig, protocol, role, key)
		}
		return p, nil
	}

	protocols := make([]Protocol, 0, len(dto.Protocols))
	for _, yp := range dto.Protocols {
		core, err := lookup(yp.Name, "core", yp.Core)
		if err != nil {
			return nil, err
		}
		catalyst, err := lookup(yp.Name, "catalyst", yp.Catalyst)
		if err != nil {
			return nil, err
		}

		p := Protocol{
			Name:             yp.Name,
			Core:             core,
			Catalyst:         catalyst,
			SynergyReason:    yp.SynergyReason,
			MechanisticBasis: yp.MechanisticBasis,
			TargetGoals:      NormalizeAll(yp.TargetGoals),
			Confidence:       Confidence(Normalize(yp.Confidence)),
		}
		if yp.Foundation != "" {
			foundation, err := lookup(yp.Name, "foundation", yp.Foundation)
			if err != nil {
				return nil, err
			}
			p.Foundation = &foundation
		}
		protocols = append(protocols, p)
	}

	return &Base{
		Interactions:     rules,
		HighRiskKeywords: NormalizeAll(dto.HighRiskKeywords),
		Products:         dto.Products,
		Protocols:        protocols,
	}, nil
}
