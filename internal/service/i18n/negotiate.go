package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Preference carries every signal a request gives about its language, highest priority first.
type Preference struct {
	Query          string
	Cookie         string
	AcceptLanguage string
	PageDefault    string
}

// Negotiator picks one of the supported languages for a request.
type Negotiator struct {
	supported []string
	fallback  string
	matcher   language.Matcher
}

// NewNegotiator builds a negotiator. fallback is used when nothing else applies.
func NewNegotiator(supported []string, fallback string) *Negotiator {
	if fallback == "" {
		fallback = "uk"
	}
	if len(supported) == 0 {
		supported = []string{fallback}
	}
	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, s := range supported {
		t, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		codes = append(codes, strings.ToLower(s))
	}
	return &Negotiator{supported: codes, fallback: fallback, matcher: language.NewMatcher(tags)}
}

// IsSupported reports whether code is one of the configured languages.
func (n *Negotiator) IsSupported(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, s := range n.supported {
		if s == code {
			return true
		}
	}
	return false
}

// Resolve applies query, cookie, Accept-Language, page default and fallback in that order.
func (n *Negotiator) Resolve(p Preference) string {
	for _, c := range []string{p.Query, p.Cookie} {
		if n.IsSupported(c) {
			return strings.ToLower(strings.TrimSpace(c))
		}
	}

	if p.AcceptLanguage != "" && len(n.supported) > 0 {
		if tags, _, err := language.ParseAcceptLanguage(p.AcceptLanguage); err == nil && len(tags) > 0 {
			if _, idx, conf := n.matcher.Match(tags...); conf != language.No && idx < len(n.supported) {
				return n.supported[idx]
			}
		}
	}

	if p.PageDefault != "" {
		return strings.ToLower(p.PageDefault)
	}
	return n.fallback
}
