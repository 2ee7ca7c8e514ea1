package panorama

import "strings"

// Matcher recognizes panorama metadata by literal substring containment.
type Matcher struct {
	First  string
	Second string
}

// NewMatcher returns a Matcher requiring both markers.
func NewMatcher(first, second string) Matcher {
	return Matcher{First: first, Second: second}
}

// Match reports whether both markers occur anywhere in text. Empty text never
// matches.
func (m Matcher) Match(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(text, m.First) && strings.Contains(text, m.Second)
}
