package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titancargo/courier-site/internal/core/domain"
)

func sampleServices() []domain.ServiceRecord {
	return []domain.ServiceRecord{
		{ID: domain.StringScalar("svc-a"), Title: domain.Ptr("Moving Help")},
		{ID: domain.NumberScalar(7), Title: domain.Ptr("Cargo Express")},
		{Name: domain.Ptr("Medical Courier")},
		{},
	}
}

func TestResolve_ByID(t *testing.T) {
	services := sampleServices()

	got := Resolve(services, "svc-a")
	require.True(t, got.Found())
	assert.Equal(t, 0, got.OrdinalIndex)
	assert.Equal(t, "Moving Help", got.TitleText)
	assert.Equal(t, "moving-help", got.Slug)

	got = Resolve(services, "7")
	require.True(t, got.Found())
	assert.Equal(t, 1, got.OrdinalIndex)
}

func TestResolve_EveryUniqueIDFindsItsPosition(t *testing.T) {
	services := []domain.ServiceRecord{
		{ID: domain.StringScalar("a")},
		{ID: domain.NumberScalar(2)},
		{ID: domain.NumberScalar(3.5)},
		{ID: domain.StringScalar("Z")},
	}
	for k, rec := range services {
		got := Resolve(services, rec.ID.String())
		assert.Equal(t, k, got.OrdinalIndex, "id %q", rec.ID.String())
	}
}

func TestResolve_IDIsCaseSensitive(t *testing.T) {
	services := []domain.ServiceRecord{{ID: domain.StringScalar("ABC")}}
	assert.False(t, Resolve(services, "abc").Found())
}

func TestResolve_BySlug(t *testing.T) {
	services := sampleServices()

	got := Resolve(services, "cargo-express")
	assert.Equal(t, 1, got.OrdinalIndex)

	got = Resolve(services, "medical-courier")
	assert.Equal(t, 2, got.OrdinalIndex)
	assert.Equal(t, "Medical Courier", got.TitleText)
}

func TestResolve_PositionalSlug(t *testing.T) {
	got := Resolve(sampleServices(), "service-4")
	require.True(t, got.Found())
	assert.Equal(t, 3, got.OrdinalIndex)
	assert.Equal(t, "Service 4", got.TitleText)
	assert.Equal(t, "service-4", got.Slug)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	services := []domain.ServiceRecord{
		{Title: domain.Ptr("Cargo")},
		{Title: domain.Ptr("cargo")},
		{ID: domain.StringScalar("cargo")},
	}
	assert.Equal(t, 0, Resolve(services, "cargo").OrdinalIndex)
}

func TestResolve_Unmatched(t *testing.T) {
	got := Resolve(sampleServices(), "does-not-exist")
	assert.False(t, got.Found())
	assert.Nil(t, got.Service)
	assert.Equal(t, -1, got.OrdinalIndex)
	assert.Equal(t, "Service", got.TitleText)
	assert.Equal(t, "service", got.Slug)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	for _, param := range []string{"", "anything", "service-1", "undefined"} {
		got := Resolve(nil, param)
		assert.Nil(t, got.Service, param)
		assert.Equal(t, -1, got.OrdinalIndex, param)
	}
}

func TestResolve_MissingIDNeverMatchesLiteralWords(t *testing.T) {
	services := []domain.ServiceRecord{{Title: domain.Ptr("Moving")}}
	assert.False(t, Resolve(services, "undefined").Found())
	assert.False(t, Resolve(services, "null").Found())
}

func TestResolve_EmptyParamMatchesSymbolOnlyTitle(t *testing.T) {
	services := []domain.ServiceRecord{{Title: domain.Ptr("!!!")}}

	got := Resolve(services, "")
	require.True(t, got.Found())
	assert.Equal(t, "!!!", got.TitleText)
	assert.Equal(t, "", got.Slug)
}

func TestResolve_EmptyTitleFallsBackToPosition(t *testing.T) {
	services := []domain.ServiceRecord{{ID: domain.StringScalar("x"), Title: domain.Ptr("")}}

	got := Resolve(services, "x")
	require.True(t, got.Found())
	assert.Equal(t, "Service 1", got.TitleText)
}

func TestResolve_TitlePreferredOverName(t *testing.T) {
	services := []domain.ServiceRecord{{Title: domain.Ptr("Same-Day Cargo!!"), Name: domain.Ptr("Other")}}

	got := Resolve(services, "same-day-cargo")
	require.True(t, got.Found())
	assert.Equal(t, "Same-Day Cargo!!", got.TitleText)
	assert.False(t, Resolve(services, "other").Found())
}
