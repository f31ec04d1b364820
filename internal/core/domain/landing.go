// Package domain contains the content bundle types shared by every page.
// This is part of the Functional Core - all functions are pure with no I/O.
package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// =============================================================================
// Landing Page Status
// =============================================================================

// PageStatus is the publication state of a landing page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
)

// IsValid checks if the status is a known value.
func (s PageStatus) IsValid() bool {
	switch s {
	case PageStatusDraft, PageStatusPublished:
		return true
	default:
		return false
	}
}

// =============================================================================
// Landing Page
// =============================================================================

// LandingPage is the content bundle a site is rendered from. It is supplied
// wholesale by the content store and never mutated while rendering.
type LandingPage struct {
	ID           string       `json:"id"`
	TemplateID   string       `json:"templateId,omitempty"`
	BusinessName string       `json:"businessName"`
	Status       PageStatus   `json:"status"`
	Content      Content      `json:"content"`
	SEOData      SEOData      `json:"seoData"`
	ThemeData    ThemeData    `json:"themeData"`
	BusinessData BusinessData `json:"businessData"`
	Images       []Image      `json:"images"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	PublishedAt  *time.Time   `json:"publishedAt,omitempty"`
}

// Services returns the service catalog, or nil when the bundle has none.
func (p LandingPage) Services() []ServiceRecord {
	if p.Content.Services == nil {
		return nil
	}
	return p.Content.Services.Services
}

// ServiceDetails returns the service details blocks, or nil when absent.
func (p LandingPage) ServiceDetails() []ServiceDetailRecord {
	if p.Content.ServicesDetails == nil {
		return nil
	}
	return p.Content.ServicesDetails.ServicesDetails
}

// Content groups the per-section content of a landing page.
type Content struct {
	Hero            *HeroContent            `json:"hero,omitempty"`
	Services        *ServicesContent        `json:"services,omitempty"`
	ServicesDetails *ServicesDetailsContent `json:"servicesDetails,omitempty"`
	Testimonials    *TestimonialsContent    `json:"testimonials,omitempty"`
	Gallery         *GalleryContent         `json:"gallery,omitempty"`
	About           *AboutContent           `json:"about,omitempty"`
}

// HeroContent is the hero banner copy.
type HeroContent struct {
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	CTAButton   *CTA   `json:"ctaButton,omitempty"`
}

// ServicesContent is the service catalog section.
type ServicesContent struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Services    []ServiceRecord `json:"services"`
}

// UnmarshalJSON decodes the catalog section. A services value that is not
// a list decodes as an empty catalog.
func (c *ServicesContent) UnmarshalJSON(data []byte) error {
	*c = ServicesContent{}
	var raw struct {
		Title       json.RawMessage `json:"title"`
		Description json.RawMessage `json:"description"`
		Services    json.RawMessage `json:"services"`
	}
	if !decodeObject(data, &raw) {
		return nil
	}
	c.Title = stringValue(raw.Title)
	c.Description = stringValue(raw.Description)
	c.Services = decodeList[ServiceRecord](raw.Services)
	return nil
}

// ServicesDetailsContent holds the long-form copy for services.
type ServicesDetailsContent struct {
	ServicesDetails []ServiceDetailRecord `json:"servicesDetails"`
}

// UnmarshalJSON decodes the details section leniently.
func (c *ServicesDetailsContent) UnmarshalJSON(data []byte) error {
	*c = ServicesDetailsContent{}
	var raw struct {
		ServicesDetails json.RawMessage `json:"servicesDetails"`
	}
	if !decodeObject(data, &raw) {
		return nil
	}
	c.ServicesDetails = decodeList[ServiceDetailRecord](raw.ServicesDetails)
	return nil
}

// TestimonialsContent is the testimonials carousel copy.
type TestimonialsContent struct {
	Title        string        `json:"title,omitempty"`
	Description  string        `json:"description,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
}

// Testimonial is a single customer quote.
type Testimonial struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// GalleryContent is the gallery section copy.
type GalleryContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// AboutContent is the about-us copy.
type AboutContent struct {
	Description string `json:"description,omitempty"`
}

// =============================================================================
// Service Records
// =============================================================================

// ServiceRecord is one sellable offering in the service catalog. Every field
// is optional; pointer fields distinguish "absent" from "empty".
type ServiceRecord struct {
	ID          Scalar     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       Scalar     `json:"price"`
	Features    StringList `json:"features,omitempty"`
	CTA         *CTA       `json:"cta,omitempty"`
}

// UnmarshalJSON decodes a service record. Entries that are not JSON objects
// decode as an empty record, and a field of the wrong type counts as absent,
// so one malformed entry cannot hide the catalog.
func (r *ServiceRecord) UnmarshalJSON(data []byte) error {
	*r = ServiceRecord{}
	var raw struct {
		ID          Scalar          `json:"id"`
		Title       json.RawMessage `json:"title"`
		Name        json.RawMessage `json:"name"`
		Description json.RawMessage `json:"description"`
		Price       Scalar          `json:"price"`
		Features    StringList      `json:"features"`
		CTA         json.RawMessage `json:"cta"`
	}
	if !decodeObject(data, &raw) {
		return nil
	}
	*r = ServiceRecord{
		ID:          raw.ID,
		Title:       optionalString(raw.Title),
		Name:        optionalString(raw.Name),
		Description: optionalString(raw.Description),
		Price:       raw.Price,
		Features:    raw.Features,
		CTA:         optionalCTA(raw.CTA),
	}
	return nil
}

// CTA is a call-to-action link.
type CTA struct {
	Href  string `json:"href,omitempty"`
	Label string `json:"label,omitempty"`
}

// UnmarshalJSON keeps only string href and label values.
func (c *CTA) UnmarshalJSON(data []byte) error {
	*c = CTA{}
	var raw struct {
		Href  json.RawMessage `json:"href"`
		Label json.RawMessage `json:"label"`
	}
	if !decodeObject(data, &raw) {
		return nil
	}
	c.Href = stringValue(raw.Href)
	c.Label = stringValue(raw.Label)
	return nil
}

func optionalCTA(data json.RawMessage) *CTA {
	if !isObject(data) {
		return nil
	}
	var c CTA
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// ServiceDetailRecord is a long-form content block loosely associated with a
// service by title similarity. There is no foreign key.
type ServiceDetailRecord struct {
	Title   *string       `json:"title,omitempty"`
	Content DetailContent `json:"content"`
}

// UnmarshalJSON decodes a detail record. Non-object entries and fields of
// the wrong type decode as absent.
func (r *ServiceDetailRecord) UnmarshalJSON(data []byte) error {
	*r = ServiceDetailRecord{}
	var raw struct {
		Title   json.RawMessage `json:"title"`
		Content DetailContent   `json:"content"`
	}
	if !decodeObject(data, &raw) {
		return nil
	}
	*r = ServiceDetailRecord{
		Title:   optionalString(raw.Title),
		Content: raw.Content,
	}
	return nil
}

// DetailContent is the body of a service details block.
type DetailContent struct {
	Description string          `json:"description,omitempty"`
	Sections    []DetailSection `json:"sections,omitempty"`
	FAQs        StringList      `json:"faqs,omitempty"`
}

// UnmarshalJSON decodes the details body leniently.
func (c *DetailContent) UnmarshalJSON(data []byte) error {
	*c = DetailContent{}
	var raw struct {
		Description json.RawMessage `json:"description"`
		Sections    json.RawMessage `json:"sections"`
		FAQs        StringList      `json:"faqs"`
	}
	if !decodeObject(data, &raw) {
		return nil
	}
	c.Description = stringValue(raw.Description)
	c.Sections = decodeList[DetailSection](raw.Sections)
	c.FAQs = raw.FAQs
	return nil
}

// DetailSection is one titled paragraph of a details block.
type DetailSection struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// UnmarshalJSON keeps only string title and text values.
func (s *DetailSection) UnmarshalJSON(data []byte) error {
	*s = DetailSection{}
	var raw struct {
		Title json.RawMessage `json:"title"`
		Text  json.RawMessage `json:"text"`
	}
	if !decodeObject(data, &raw) {
		return nil
	}
	s.Title = stringValue(raw.Title)
	s.Text = stringValue(raw.Text)
	return nil
}

// =============================================================================
// Images, Theme, SEO, Business
// =============================================================================

// Image is an uploaded image bound to a named slot ("hero-image-1",
// "services-image-3", "moving-service-2", ...).
type Image struct {
	ID       string `json:"id,omitempty"`
	SlotName string `json:"slotName,omitempty"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	AltText  string `json:"altText,omitempty"`
	Title    string `json:"title,omitempty"`
}

// ThemeData holds the brand colours.
type ThemeData struct {
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	AccentColor    string `json:"accentColor,omitempty"`
}

// SEOData holds page metadata.
type SEOData struct {
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	IsIndex         bool     `json:"isIndex"`
	CanonicalURL    string   `json:"canonicalUrl,omitempty"`
	FocusedKeywords []string `json:"focusedKeywords,omitempty"`
}

// BusinessData holds contact and location details.
type BusinessData struct {
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       Address         `json:"address"`
	Coordinates   Coordinates     `json:"coordinates"`
	SocialLinks   []SocialLink    `json:"socialLinks,omitempty"`
	ServiceAreas  []string        `json:"serviceAreas,omitempty"`
	BusinessHours []BusinessHours `json:"businessHours,omitempty"`
}

// Address is a postal address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// Coordinates is a map position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SocialLink is a link to a social profile.
type SocialLink struct {
	Platform string `json:"platform,omitempty"`
	URL      string `json:"url,omitempty"`
}

// BusinessHours is the opening time for one day.
type BusinessHours struct {
	Day   string `json:"day,omitempty"`
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

// =============================================================================
// Helpers
// =============================================================================

// Ptr returns a pointer to v. Handy for optional content fields.
func Ptr[T any](v T) *T {
	return &v
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// decodeObject decodes data into v when data is a JSON object. It reports
// false for anything else, including an object that fails to decode.
func decodeObject(data []byte, v any) bool {
	return isObject(data) && json.Unmarshal(data, v) == nil
}

// optionalString returns the value of a JSON string, or nil for any other
// value or when the field is missing.
func optionalString(data json.RawMessage) *string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// decodeList decodes a JSON array element by element. Anything that is not
// an array yields nil; elements that fail to decode are skipped.
func decodeList[T any](data json.RawMessage) []T {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// stringValue is optionalString with "" for absent values.
func stringValue(data json.RawMessage) string {
	if p := optionalString(data); p != nil {
		return *p
	}
	return ""
}
