package view

import (
	"github.com/titancargo/courier-site/internal/core/domain"
)

// DefaultBusinessName is shown when the landing page has no business name.
const DefaultBusinessName = "Business"

// Layout is the chrome shared by every page: navbar, footer and head tags.
type Layout struct {
	BusinessName  string                 `json:"businessName"`
	Phone         string                 `json:"phone,omitempty"`
	Email         string                 `json:"email,omitempty"`
	Address       domain.Address         `json:"address"`
	SocialLinks   []domain.SocialLink    `json:"socialLinks,omitempty"`
	BusinessHours []domain.BusinessHours `json:"businessHours,omitempty"`
	ServiceAreas  []string               `json:"serviceAreas,omitempty"`
	Theme         domain.ThemeData       `json:"theme"`
	SEO           domain.SEOData         `json:"seo"`
	Nav           []Link                 `json:"nav"`
}

// Link is a labelled internal link.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NewLayout builds the shared chrome for page.
func NewLayout(page domain.LandingPage) Layout {
	name := page.BusinessName
	if name == "" {
		name = DefaultBusinessName
	}
	b := page.BusinessData
	return Layout{
		BusinessName:  name,
		Phone:         b.Phone,
		Email:         b.Email,
		Address:       b.Address,
		SocialLinks:   b.SocialLinks,
		BusinessHours: b.BusinessHours,
		ServiceAreas:  b.ServiceAreas,
		Theme:         page.ThemeData,
		SEO:           page.SEOData,
		Nav: []Link{
			{Label: "Home", Href: "/"},
			{Label: "Services", Href: "/services"},
			{Label: "About Us", Href: "/about-us"},
			{Label: "Reviews", Href: "/reviews"},
			{Label: "Contact Us", Href: "/contact-us"},
		},
	}
}
