package knowledge

import "strings"

// Normalize lower-cases and trims a free-text entry before matching.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAll normalizes every entry, keeping order and length.
func NormalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, Normalize(v))
	}
	return out
}

// Matcher reports which lower-case tokens occur as substrings of a text.
// "i take fluoxetine 20mg" matches the token "fluoxetine".
type Matcher struct {
	tokens []string
}

func NewMatcher(tokens ...string) *Matcher {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = Normalize(t)
		if t == "" {
			continue
		}
		kept = append(kept, t)
	}
	return &Matcher{tokens: kept}
}

// Match returns every token contained in text, in declaration order.
// Text is normalized first; a blank text never matches.
func (m *Matcher) Match(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}

	var hits []string
	for _, token := range m.tokens {
		if strings.Contains(text, token) {
			hits = append(hits, token)
		}
	}
	return hits
}

// Any reports whether text contains at least one token.
func (m *Matcher) Any(text string) bool {
	text = Normalize(text)
	if text == "" {
		return false
	}
	for _, token := range m.tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func (m *Matcher) Tokens() []string {
	return append([]string(nil), m.tokens...)
}
