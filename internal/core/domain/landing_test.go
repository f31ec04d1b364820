package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Scalar Tests
// =============================================================================

func TestScalar_UnmarshalString(t *testing.T) {
	var s Scalar
	require.NoError(t, json.Unmarshal([]byte(`"svc-1"`), &s))
	assert.True(t, s.Present)
	assert.False(t, s.Numeric)
	assert.Equal(t, "svc-1", s.String())
}

func TestScalar_UnmarshalNumber(t *testing.T) {
	var s Scalar
	require.NoError(t, json.Unmarshal([]byte(`7`), &s))
	assert.True(t, s.Numeric)
	assert.Equal(t, "7", s.String())

	require.NoError(t, json.Unmarshal([]byte(`7.0`), &s))
	assert.Equal(t, "7", s.String())

	require.NoError(t, json.Unmarshal([]byte(`12.5`), &s))
	assert.Equal(t, "12.5", s.String())
}

func TestScalar_NullAndMissingAreEmpty(t *testing.T) {
	var rec ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Cargo"}`), &rec))
	assert.False(t, rec.ID.Present)
	assert.Equal(t, "", rec.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &rec))
	assert.False(t, rec.ID.Present)
	assert.Equal(t, "", rec.ID.String())
}

func TestScalar_BoolAndStructured(t *testing.T) {
	var s Scalar
	require.NoError(t, json.Unmarshal([]byte(`true`), &s))
	assert.Equal(t, "true", s.String())

	require.NoError(t, json.Unmarshal([]byte(`{"a":1}`), &s))
	assert.False(t, s.Present)

	require.NoError(t, json.Unmarshal([]byte(`[1,2]`), &s))
	assert.False(t, s.Present)
}

func TestScalar_Float(t *testing.T) {
	tests := []struct {
		name   string
		input  Scalar
		want   float64
		wantOK bool
	}{
		{"number", NumberScalar(49), 49, true},
		{"numeric string", StringScalar(" 19.99 "), 19.99, true},
		{"blank string", StringScalar("   "), 0, false},
		{"text", StringScalar("call us"), 0, false},
		{"absent", Scalar{}, 0, false},
		{"nan", StringScalar("NaN"), 0, false},
		{"inf", StringScalar("inf"), 0, false},
		{"infinity", StringScalar("Infinity"), 0, false},
		{"negative infinity", StringScalar("-Infinity"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.input.Float()
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestScalar_OutOfRangeNumberIsAbsent(t *testing.T) {
	var rec ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"price":1e400}`), &rec))
	assert.Equal(t, "2", rec.ID.String())
	assert.False(t, rec.Price.Present)
}

func TestScalar_MarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(struct {
		A Scalar `json:"a"`
		B Scalar `json:"b"`
		C Scalar `json:"c"`
	}{NumberScalar(3), StringScalar("x"), Scalar{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":"x","c":null}`, string(out))
}

// =============================================================================
// Lenient Decoding Tests
// =============================================================================

func TestStringList_DropsNonStrings(t *testing.T) {
	var rec ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(`{"features":["Fast", 3, null, "Insured"]}`), &rec))
	assert.Equal(t, StringList{"Fast", "Insured"}, rec.Features)
}

func TestStringList_NotAList(t *testing.T) {
	var rec ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(`{"features":"Fast"}`), &rec))
	assert.Empty(t, rec.Features)
}

func TestServiceRecord_NonObjectEntriesDecodeEmpty(t *testing.T) {
	var content ServicesContent
	err := json.Unmarshal([]byte(`{"services":[{"title":"Cargo"}, "junk", null, 4]}`), &content)
	require.NoError(t, err)
	require.Len(t, content.Services, 4)
	assert.Equal(t, "Cargo", *content.Services[0].Title)
	assert.Nil(t, content.Services[1].Title)
	assert.Nil(t, content.Services[2].Title)
	assert.Nil(t, content.Services[3].Title)
}

func TestServiceRecord_EmptyTitleIsPresent(t *testing.T) {
	var rec ServiceRecord
	require.NoError(t, json.Unmarshal([]byte(`{"title":"","name":"Cargo"}`), &rec))
	require.NotNil(t, rec.Title)
	assert.Equal(t, "", *rec.Title)
}

func TestServicesContent_MixedTypesKeepCatalog(t *testing.T) {
	raw := `{
		"title": 12,
		"services": [
			{"id": 1, "title": "Moving Help"},
			{"id": 2, "title": 5, "description": 7},
			{"id": 3, "name": "Cargo", "cta": "call us"},
			{"id": 4, "name": true, "cta": {"href": "/contact-us", "label": 9}}
		]
	}`

	var content ServicesContent
	require.NoError(t, json.Unmarshal([]byte(raw), &content))
	assert.Empty(t, content.Title)
	require.Len(t, content.Services, 4)

	assert.Equal(t, "Moving Help", *content.Services[0].Title)

	assert.Equal(t, "2", content.Services[1].ID.String())
	assert.Nil(t, content.Services[1].Title)
	assert.Nil(t, content.Services[1].Description)

	require.NotNil(t, content.Services[2].Name)
	assert.Equal(t, "Cargo", *content.Services[2].Name)
	assert.Nil(t, content.Services[2].CTA)

	assert.Nil(t, content.Services[3].Name)
	assert.Equal(t, &CTA{Href: "/contact-us"}, content.Services[3].CTA)
}

func TestServicesContent_ServicesNotAList(t *testing.T) {
	var content ServicesContent
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Our Services","services":{"id":1}}`), &content))
	assert.Equal(t, "Our Services", content.Title)
	assert.Empty(t, content.Services)
}

func TestServiceDetailRecord_MixedTypes(t *testing.T) {
	raw := `{"servicesDetails": [
		{"title": 5, "content": {"description": 7, "faqs": ["Why? Because."]}},
		{"title": "Cargo", "content": {
			"description": "Same-day.",
			"sections": [{"title": 1, "text": "Tracked."}, "junk", {"title": "Insured", "text": false}]
		}},
		{"title": "Moving", "content": "soon"},
		{"title": "Storage", "content": {"sections": "none"}}
	]}`

	var content ServicesDetailsContent
	require.NoError(t, json.Unmarshal([]byte(raw), &content))
	require.Len(t, content.ServicesDetails, 4)

	first := content.ServicesDetails[0]
	assert.Nil(t, first.Title)
	assert.Empty(t, first.Content.Description)
	assert.Equal(t, StringList{"Why? Because."}, first.Content.FAQs)

	second := content.ServicesDetails[1]
	assert.Equal(t, "Same-day.", second.Content.Description)
	assert.Equal(t, []DetailSection{
		{Text: "Tracked."},
		{},
		{Title: "Insured"},
	}, second.Content.Sections)

	assert.Equal(t, "Moving", *content.ServicesDetails[2].Title)
	assert.Equal(t, DetailContent{}, content.ServicesDetails[2].Content)
	assert.Empty(t, content.ServicesDetails[3].Content.Sections)
}

func TestLandingPage_Accessors(t *testing.T) {
	var page LandingPage
	assert.Nil(t, page.Services())
	assert.Nil(t, page.ServiceDetails())

	raw := `{
		"businessName": "Titan",
		"content": {
			"services": {"services": [{"id": 1, "title": "Cargo"}]},
			"servicesDetails": {"servicesDetails": [{"title": "Cargo Details", "content": {"faqs": ["Why?"]}}]}
		}
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &page))
	require.Len(t, page.Services(), 1)
	assert.Equal(t, "1", page.Services()[0].ID.String())
	require.Len(t, page.ServiceDetails(), 1)
	assert.Equal(t, StringList{"Why?"}, page.ServiceDetails()[0].Content.FAQs)
}

func TestPageStatus_IsValid(t *testing.T) {
	assert.True(t, PageStatusDraft.IsValid())
	assert.True(t, PageStatusPublished.IsValid())
	assert.False(t, PageStatus("archived").IsValid())
}
