package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Slugify Tests
// =============================================================================

func TestSlugify_Basic(t *testing.T) {
	assert.Equal(t, "moving-help", Slugify("Moving Help"))
}

func TestSlugify_SameDayCargo(t *testing.T) {
	assert.Equal(t, "same-day-cargo", Slugify("Same-Day Cargo!!"))
}

func TestSlugify_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "trim-me", Slugify("  trim me \t"))
}

func TestSlugify_CollapsesSeparatorRuns(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("hello   --- world"))
}

func TestSlugify_EmptyString(t *testing.T) {
	assert.Equal(t, "", Slugify(""))
}

func TestSlugify_OnlySpecialChars(t *testing.T) {
	assert.Equal(t, "", Slugify("!@#$%^&*()"))
}

func TestSlugify_NonASCIIBecomesSeparator(t *testing.T) {
	assert.Equal(t, "caf-cr-me", Slugify("Café Crème"))
}

func TestSlugify_TableDriven(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ampersand", "Certified & Professional Cargo", "certified-professional-cargo"},
		{"numbers", "Service 12", "service-12"},
		{"leading symbols", "--Cargo--", "cargo"},
		{"underscores", "cargo_express", "cargo-express"},
		{"already slug", "same-day-cargo", "same-day-cargo"},
		{"uppercase", "MEDICAL COURIER", "medical-courier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Same-Day Cargo!!",
		"  Moving & Relocation  ",
		"Ünïcödé Títle",
		"---",
		"a--b__c  d",
		"",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}
