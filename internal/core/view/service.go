package view

import (
	"github.com/titancargo/courier-site/internal/core/catalog"
	"github.com/titancargo/courier-site/internal/core/domain"
	"github.com/titancargo/courier-site/internal/core/resolution"
)

// MaxRelated caps the related services list of a service page.
const MaxRelated = 6

// =============================================================================
// Service Page
// =============================================================================

// ServicePage is the render model of /services/{id}.
type ServicePage struct {
	Layout       Layout                    `json:"layout"`
	Found        bool                      `json:"found"`
	OrdinalIndex int                       `json:"ordinalIndex"`
	TitleText    string                    `json:"title"`
	Slug         string                    `json:"slug"`
	Description  string                    `json:"description,omitempty"`
	Price        *float64                  `json:"price,omitempty"`
	Features     []string                  `json:"features"`
	CTA          *domain.CTA               `json:"cta,omitempty"`
	BannerSlot   string                    `json:"bannerSlot"`
	Banner       *ImageRef                 `json:"banner,omitempty"`
	Gallery      []ImageRef                `json:"gallery"`
	HowItWorks   *ImageRef                 `json:"howItWorksImage,omitempty"`
	Detail       resolution.ResolvedDetail `json:"detail"`
	Related      []RelatedService          `json:"related"`
	Breadcrumbs  []Link                    `json:"breadcrumbs"`
}

// RelatedService is a link card to another catalog entry.
type RelatedService struct {
	Label string    `json:"label"`
	Href  string    `json:"href"`
	Image *ImageRef `json:"image,omitempty"`
}

// NewServicePage resolves routeParam against the page's catalog and builds
// the detail page model. An unknown parameter yields Found == false with a
// "Service" title, no details and the full related list.
func NewServicePage(page domain.LandingPage, routeParam string) ServicePage {
	services := page.Services()
	svc := resolution.Resolve(services, routeParam)

	out := ServicePage{
		Layout:       NewLayout(page),
		Found:        svc.Found(),
		OrdinalIndex: svc.OrdinalIndex,
		TitleText:    svc.TitleText,
		Slug:         svc.Slug,
		Features:     []string{},
		BannerSlot:   ServiceSlot(max(svc.OrdinalIndex, 0)),
		Gallery:      []ImageRef{},
		Detail:       resolution.ResolveDetails(page.ServiceDetails(), svc),
		Related:      RelatedServices(services, svc.OrdinalIndex, page.Images),
		Breadcrumbs: []Link{
			{Label: "Home", Href: "/"},
			{Label: "Services", Href: "/services"},
			{Label: svc.TitleText},
		},
	}

	if svc.Found() {
		rec := *svc.Service
		if rec.Description != nil {
			out.Description = *rec.Description
		}
		out.Price = ParsePrice(rec.Price)
		out.Features = NormalizeFeatures(rec.Features)
		out.CTA = ExtractCTA(rec.CTA)
		out.Banner = imagePtr(FindSlot(page.Images, ServiceSlot(svc.OrdinalIndex)))
	}

	if prefix, ok := GalleryPrefix(svc.Slug); ok {
		out.Gallery = FilterSlotPrefix(page.Images, prefix)
	}
	if len(out.Gallery) > 2 {
		img := out.Gallery[2]
		out.HowItWorks = &img
	}
	return out
}

// RelatedServices lists every catalog entry except the one at exclude, in
// catalog order, capped at MaxRelated. Pass -1 to exclude nothing.
func RelatedServices(services []domain.ServiceRecord, exclude int, images []domain.Image) []RelatedService {
	out := []RelatedService{}
	cat := catalog.NewServices(services)
	cat.Each(func(i int, rec domain.ServiceRecord) bool {
		if i == exclude {
			return true
		}
		out = append(out, RelatedService{
			Label: cat.Label(i),
			Href:  catalog.Href(rec, i),
			Image: imagePtr(FindSlot(images, ServiceSlot(i))),
		})
		return len(out) < MaxRelated
	})
	return out
}
