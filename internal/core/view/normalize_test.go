package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titancargo/courier-site/internal/core/domain"
)

func TestNormalizeFeatures(t *testing.T) {
	got := NormalizeFeatures([]string{
		"  fully insured ",
		"",
		"   ",
		"FULLY INSURED",
		"24/7 support",
		"same-day DELIVERY",
		"(real-time) tracking",
	})

	assert.Equal(t, []string{
		"Fully Insured",
		"24/7 Support",
		"Same-day Delivery",
		"(Real-time) Tracking",
	}, got)
}

func TestNormalizeFeatures_Cap(t *testing.T) {
	raw := make([]string, 20)
	for i := range raw {
		raw[i] = fmt.Sprintf("feature %d", i)
	}

	got := NormalizeFeatures(raw)
	require.Len(t, got, MaxFeatures)
	assert.Equal(t, "Feature 0", got[0])
	assert.Equal(t, "Feature 11", got[11])
}

func TestNormalizeFeatures_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, NormalizeFeatures(nil))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		price domain.Scalar
		want  *float64
	}{
		{"number", domain.NumberScalar(49.5), domain.Ptr(49.5)},
		{"numeric string", domain.StringScalar(" 120 "), domain.Ptr(120.0)},
		{"blank string", domain.StringScalar("  "), nil},
		{"text", domain.StringScalar("call us"), nil},
		{"absent", domain.Scalar{}, nil},
		{"nan", domain.StringScalar("NaN"), nil},
		{"inf", domain.StringScalar("inf"), nil},
		{"infinity", domain.StringScalar("Infinity"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.price))
		})
	}
}

func TestExtractCTA(t *testing.T) {
	assert.Nil(t, ExtractCTA(nil))
	assert.Nil(t, ExtractCTA(&domain.CTA{}))

	got := ExtractCTA(&domain.CTA{Label: "Book now"})
	require.NotNil(t, got)
	assert.Equal(t, "Book now", got.Label)
	assert.Empty(t, got.Href)
}
