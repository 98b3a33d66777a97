package knowledge

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Warfarin", "warfarin"},
		{"  I take Fluoxetine 20mg ", "i take fluoxetine 20mg"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.input); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

// Every interaction token must match a medication string that embeds it.
func TestInteractionTokensMatchEmbedded(t *testing.T) {
	kb := Default()
	m := NewMatcher(kb.InteractionTokens()...)
	for _, token := range kb.InteractionTokens() {
		t.Run(token, func(t *testing.T) {
			text := "I take " + strings.ToUpper(token) + " 20mg daily"
			hits := m.Match(text)
			if !containsToken(hits, token) {
				t.Fatalf("Match(%q) = %v, missing %q", text, hits, token)
			}
		})
	}
}

// Every high-risk keyword must match a condition string that embeds it.
func TestHighRiskKeywordsMatchEmbedded(t *testing.T) {
	kb := Default()
	m := NewMatcher(kb.HighRiskKeywords...)
	for _, kw := range kb.HighRiskKeywords {
		t.Run(kw, func(t *testing.T) {
			text := "History of " + strings.ToUpper(kw[:1]) + kw[1:]
			if !m.Any(text) {
				t.Fatalf("Any(%q) = false, want true", text)
			}
			if !containsToken(m.Match(text), kw) {
				t.Fatalf("Match(%q) missing %q", text, kw)
			}
		})
	}
}

func TestMatcherRecordsEveryToken(t *testing.T) {
	kb := Default()
	m := NewMatcher(kb.InteractionTokens()...)

	hits := m.Match("Escitalopram")
	if len(hits) != 2 || hits[0] != "citalopram" || hits[1] != "escitalopram" {
		t.Fatalf("expected citalopram and escitalopram in declaration order, got %v", hits)
	}
}

func TestMatcherNoMatch(t *testing.T) {
	m := NewMatcher("warfarin", "", "  ")
	if got := m.Tokens(); len(got) != 1 {
		t.Fatalf("blank tokens should be dropped, got %v", got)
	}
	for _, text := range []string{"", "   ", "ibuprofen", "warf arin"} {
		if m.Any(text) || len(m.Match(text)) != 0 {
			t.Errorf("unexpected match for %q", text)
		}
	}
}

func containsToken(hits []string, token string) bool {
	for _, h := range hits {
		if h == token {
			return true
		}
	}
	return false
}
