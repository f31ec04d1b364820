package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titancargo/courier-site/internal/core/domain"
)

func TestResolveDetails(t *testing.T) {
	services := []domain.ServiceRecord{{Title: domain.Ptr("Moving Help")}}
	details := []domain.ServiceDetailRecord{{
		Title: domain.Ptr("Certified Moving Services"),
		Content: domain.DetailContent{
			Description: "We move homes.",
			Sections: []domain.DetailSection{
				{Title: "Plan", Text: "We plan."},
				{},
				{Title: "  ", Text: " "},
				{Text: "Untitled step"},
			},
			FAQs: domain.StringList{"Do you pack? Yes.", "   ", ""},
		},
	}}

	got := ResolveDetails(details, Resolve(services, "moving-help"))

	require.True(t, got.Found)
	assert.True(t, got.HasContent())
	assert.Equal(t, "Certified Moving Services", got.Title)
	assert.Equal(t, "We move homes.", got.Description)
	assert.Equal(t, []domain.DetailSection{
		{Title: "Plan", Text: "We plan."},
		{Text: "Untitled step"},
	}, got.Sections)
	assert.Equal(t, []QA{{Question: "Do you pack?", Answer: "Yes."}}, got.FAQs)
}

func TestResolveDetails_NoMatch(t *testing.T) {
	got := ResolveDetails(nil, Resolve(nil, "anything"))

	assert.False(t, got.Found)
	assert.False(t, got.HasContent())
	assert.NotNil(t, got.Sections)
	assert.NotNil(t, got.FAQs)
}

func TestResolveDetails_WhitespaceDescriptionKept(t *testing.T) {
	details := []domain.ServiceDetailRecord{{Content: domain.DetailContent{Description: "   "}}}

	got := ResolveDetails(details, ResolvedService{OrdinalIndex: 0, TitleText: "Service 1"})

	require.True(t, got.Found)
	assert.Equal(t, "   ", got.Description)
	assert.True(t, got.HasContent())
}

func TestResolveDetails_EmptyDescription(t *testing.T) {
	details := []domain.ServiceDetailRecord{{Content: domain.DetailContent{}}}

	got := ResolveDetails(details, ResolvedService{OrdinalIndex: 0, TitleText: "Service 1"})

	require.True(t, got.Found)
	assert.Empty(t, got.Description)
	assert.False(t, got.HasContent())
}
