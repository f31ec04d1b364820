package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titancargo/courier-site/internal/core/catalog"
	"github.com/titancargo/courier-site/internal/core/domain"
)

func detailsTitled(titles ...string) []domain.ServiceDetailRecord {
	out := make([]domain.ServiceDetailRecord, len(titles))
	for i, title := range titles {
		out[i] = domain.ServiceDetailRecord{Title: domain.Ptr(title)}
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		slug string
		want Kind
	}{
		{"cargo-express", KindCargo},
		{"medical-courier", KindCargo},
		{"same-day-delivery", KindCargo},
		{"appliance-delivery", KindCargo},
		{"furniture-delivery", KindCargo},
		{"moving-help", KindMoving},
		{"local-movers", KindMoving},
		{"office-relocation", KindMoving},
		{"storage", KindOther},
		{"", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.slug))
		})
	}
}

func TestMatchDetail_ExactSlug(t *testing.T) {
	details := detailsTitled("Storage", "Cargo Express", "Moving Help")

	rec, ok := MatchDetail(details, "Moving Help", 0)
	require.True(t, ok)
	assert.Equal(t, "Moving Help", catalog.Title(rec))
}

func TestMatchDetail_SubstringOverlap(t *testing.T) {
	details := detailsTitled("Other", "Certified Cargo Express Services")

	rec, ok := MatchDetail(details, "Cargo Express", 0)
	require.True(t, ok)
	assert.Equal(t, "Certified Cargo Express Services", catalog.Title(rec))

	// Containment works in both directions.
	rec, ok = MatchDetail(detailsTitled("Other", "Cargo"), "Cargo Express Plus", 0)
	require.True(t, ok)
	assert.Equal(t, "Cargo", catalog.Title(rec))
}

func TestMatchDetail_MovingHelpFallsThroughToKeyword(t *testing.T) {
	services := []domain.ServiceRecord{
		{Title: domain.Ptr("Moving Help")},
		{Title: domain.Ptr("Cargo Express")},
	}
	details := detailsTitled("Certified Cargo Services", "Certified Moving Services")

	svc := Resolve(services, "moving-help")
	require.Equal(t, 0, svc.OrdinalIndex)

	// Tier 1 cannot match: neither slug contains the other.
	_, ok := matchBySlug(catalog.NewDetails(details), svc.Slug)
	require.False(t, ok)

	rec, ok := MatchDetail(details, svc.TitleText, svc.OrdinalIndex)
	require.True(t, ok)
	assert.Equal(t, "Certified Moving Services", catalog.Title(rec))
}

func TestMatchDetail_CargoKeywordAcceptsCourierTitle(t *testing.T) {
	details := detailsTitled("Moving", "Courier Network")

	rec, ok := MatchDetail(details, "Same-Day Medical", 0)
	require.True(t, ok)
	assert.Equal(t, "Courier Network", catalog.Title(rec))
}

func TestMatchDetail_FurnitureIsCargoFirst(t *testing.T) {
	details := detailsTitled("Certified Moving Services", "Certified Cargo Services")

	rec, ok := MatchDetail(details, "Furniture Delivery", 0)
	require.True(t, ok)
	assert.Equal(t, "Certified Cargo Services", catalog.Title(rec))
}

func TestMatchDetail_CargoLikeWithoutCargoTitleUsesPosition(t *testing.T) {
	details := detailsTitled("Certified Moving Services", "Storage Plans")

	rec, ok := MatchDetail(details, "Furniture Delivery", 1)
	require.True(t, ok)
	assert.Equal(t, "Storage Plans", catalog.Title(rec))
}

func TestMatchDetail_Positional(t *testing.T) {
	details := detailsTitled("Alpha", "Beta", "Gamma")

	rec, ok := MatchDetail(details, "Window Cleaning", 2)
	require.True(t, ok)
	assert.Equal(t, "Gamma", catalog.Title(rec))

	_, ok = MatchDetail(details, "Window Cleaning", 3)
	assert.False(t, ok)
	_, ok = MatchDetail(details, "Window Cleaning", -1)
	assert.False(t, ok)
}

func TestMatchDetail_EmptySlugOnlyMatchesEmptyTitle(t *testing.T) {
	details := []domain.ServiceDetailRecord{
		{Title: domain.Ptr("Alpha")},
		{},
	}

	rec, ok := MatchDetail(details, "!!!", -1)
	require.True(t, ok)
	assert.Nil(t, rec.Title)
}

func TestMatchDetail_NoDetails(t *testing.T) {
	_, ok := MatchDetail(nil, "Moving Help", 0)
	assert.False(t, ok)
}
