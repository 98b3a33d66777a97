package knowledge

import (
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default knowledge base is invalid: %v", err)
	}
}

func TestDefaultProtocolProductsInCatalog(t *testing.T) {
	kb := Default()
	for _, p := range kb.Protocols {
		if len(p.TargetGoals) == 0 {
			t.Errorf("protocol %s has no target goals", p.Name)
		}
		for _, name := range []string{p.Core.Name, p.Catalyst.Name} {
			if _, ok := kb.ProductByName(name); !ok {
				t.Errorf("protocol %s references %q which is not in the catalog", p.Name, name)
			}
		}
		if p.Foundation != nil {
			if _, ok := kb.ProductByName(p.Foundation.Name); !ok {
				t.Errorf("protocol %s foundation %q not in catalog", p.Name, p.Foundation.Name)
			}
		}
	}
}

func TestDefaultGoalsMapToOneProtocol(t *testing.T) {
	seen := map[string]string{}
	for _, p := range Default().Protocols {
		for _, g := range p.TargetGoals {
			if prev, ok := seen[g]; ok {
				t.Errorf("goal %q claimed by both %s and %s", g, prev, p.Name)
			}
			seen[g] = p.Name
		}
	}
	for _, g := range []string{"focus", "sleep", "stress", "aging", "skin", "gut", "joints"} {
		if _, ok := seen[g]; !ok {
			t.Errorf("goal %q has no protocol", g)
		}
	}
}

func TestDefaultProtocolOrder(t *testing.T) {
	want := []string{
		"Cognitive Performance Protocol",
		"Sleep & Recovery Protocol",
		"Longevity & Cellular Health Protocol",
		"Gut-Brain Foundation Protocol",
	}
	got := Default().Protocols
	if len(got) != len(want) {
		t.Fatalf("expected %d protocols, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("protocol %d = %q, want %q", i, got[i].Name, want[i])
		}
	}
}

func TestExcludedBy(t *testing.T) {
	kb := Default()
	cases := []struct {
		token string
		want  []string
	}{
		{"warfarin", []string{"AgeCore NAD+"}},
		{"sertraline", []string{"Neuro-Blue"}},
		{"maoi", []string{"Neuro-Blue", "Zen Mode"}},
		{"losartan", []string{"Zen Mode"}},
		{"ibuprofen", nil},
	}
	for _, c := range cases {
		got := kb.ExcludedBy(c.token)
		if strings.Join(got, ",") != strings.Join(c.want, ",") {
			t.Errorf("ExcludedBy(%q) = %v, want %v", c.token, got, c.want)
		}
	}
}

func TestValidateReportsBrokenTables(t *testing.T) {
	kb := Default()
	broken := &Base{
		Interactions:     []InteractionRule{{Token: "Warfarin ", Products: []string{"Ghost"}}},
		HighRiskKeywords: []string{"Cardiac"},
		Products:         kb.Products,
		Protocols: []Protocol{{
			Name:       "Orphan",
			Core:       Product{Name: "Missing"},
			Catalyst:   kb.Products["neuroBlue"],
			Confidence: "certain",
		}},
	}

	err := broken.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"not normalized",
		"unknown product \"Ghost\"",
		"high-risk keyword \"Cardiac\"",
		"no target goals",
		"core product \"Missing\"",
		"unknown confidence",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %s", want, msg)
		}
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	first := Default()
	first.Interactions[0].Products[0] = "X"
	first.HighRiskKeywords[0] = "x"
	first.Protocols[0].Core.Benefits[0] = "x"
	first.Protocols[0].TargetGoals[0] = "x"

	second := Default()
	if second.Interactions[0].Products[0] != "Neuro-Blue" {
		t.Fatalf("interaction table leaked: %+v", second.Interactions[0])
	}
	if second.HighRiskKeywords[0] == "x" {
		t.Fatal("keyword list leaked")
	}
	if second.Protocols[0].Core.Benefits[0] == "x" || !second.Protocols[0].Targets("focus") {
		t.Fatalf("protocol data leaked: %+v", second.Protocols[0])
	}
}

func TestProtocolClone(t *testing.T) {
	f := Product{Name: "Base", Benefits: []string{"a"}}
	p := Protocol{Name: "P", Core: Product{Benefits: []string{"b"}}, Foundation: &f, TargetGoals: []string{"sleep"}}

	c := p.Clone()
	c.Foundation.Benefits[0] = "changed"
	c.Core.Benefits[0] = "changed"
	c.TargetGoals[0] = "changed"

	if f.Benefits[0] != "a" || p.Core.Benefits[0] != "b" || p.TargetGoals[0] != "sleep" {
		t.Fatalf("clone shares data with the original: %+v", p)
	}
}

func TestExcludedByReturnsCopy(t *testing.T) {
	kb := Default()
	got := kb.ExcludedBy("warfarin")
	got[0] = "X"
	if kb.ExcludedBy("warfarin")[0] != "AgeCore NAD+" {
		t.Fatal("ExcludedBy exposes the table")
	}
}
