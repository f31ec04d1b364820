package domain

import (
	"regexp"
	"strings"
)

// =============================================================================
// Slug Generation
// =============================================================================

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display string to a URL-safe, comparison-stable slug.
//
// The transformation rules are:
//   - The input is lower-cased and trimmed
//   - Every run of characters outside [a-z0-9] becomes a single hyphen
//   - Leading and trailing hyphens are removed
//
// Slugify is total and idempotent. Empty or all-symbol input yields "".
// Every slug comparison in the site goes through this function.
//
// Example:
//
//	Slugify("Same-Day Cargo!!")   // returns "same-day-cargo"
//	Slugify("  Moving Help  ")    // returns "moving-help"
//	Slugify("!!!")                // returns ""
func Slugify(s string) string {
	slug := strings.TrimSpace(strings.ToLower(s))
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
