package view

import (
	"regexp"
	"strings"

	"github.com/titancargo/courier-site/internal/core/domain"
)

// MaxFeatures caps the feature list of a service page.
const MaxFeatures = 12

var titleWord = regexp.MustCompile(`\w\S*`)

// NormalizeFeatures trims, drops blanks, removes case-insensitive duplicates
// (first spelling wins), title-cases every word and keeps at most 12 items.
func NormalizeFeatures(raw []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, TitleCase(f))
		if len(out) == MaxFeatures {
			break
		}
	}
	return out
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest. Leading punctuation of a word is left alone.
func TitleCase(s string) string {
	return titleWord.ReplaceAllStringFunc(s, func(w string) string {
		return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	})
}

// ParsePrice returns the numeric price of a service, accepting numbers and
// non-blank numeric strings.
func ParsePrice(price domain.Scalar) *float64 {
	f, ok := price.Float()
	if !ok {
		return nil
	}
	return &f
}

// ExtractCTA returns the call-to-action of a service when it has an href or
// a label.
func ExtractCTA(cta *domain.CTA) *domain.CTA {
	if cta == nil || (cta.Href == "" && cta.Label == "") {
		return nil
	}
	out := *cta
	return &out
}
