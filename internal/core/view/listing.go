package view

import (
	"github.com/titancargo/courier-site/internal/core/catalog"
	"github.com/titancargo/courier-site/internal/core/domain"
)

// Section defaults used when the content bundle leaves them blank.
const (
	DefaultServicesTitle       = "Our Services"
	DefaultServicesDescription = "Discover our range of professional services designed to meet your needs."
	DefaultTestimonialsTitle   = "TESTIMONIALS"
	DefaultGalleryTitle        = "Gallery"
)

// ServiceCard is one entry of the services listing.
type ServiceCard struct {
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Href        string    `json:"href"`
	Image       *ImageRef `json:"image,omitempty"`
	Price       *float64  `json:"price,omitempty"`
}

// ServicesSection is the services listing with its heading.
type ServicesSection struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Cards       []ServiceCard `json:"cards"`
}

// NewServicesSection builds the listing shown on / and /services.
func NewServicesSection(page domain.LandingPage) ServicesSection {
	out := ServicesSection{
		Title:       DefaultServicesTitle,
		Description: DefaultServicesDescription,
		Cards:       ServiceCards(page.Services(), page.Images),
	}
	if s := page.Content.Services; s != nil {
		out.Title = orDefault(s.Title, DefaultServicesTitle)
		out.Description = orDefault(s.Description, DefaultServicesDescription)
	}
	return out
}

// ServiceCards maps every catalog entry to a listing card.
func ServiceCards(services []domain.ServiceRecord, images []domain.Image) []ServiceCard {
	out := make([]ServiceCard, 0, len(services))
	cat := catalog.NewServices(services)
	cat.Each(func(i int, rec domain.ServiceRecord) bool {
		card := ServiceCard{
			Label: cat.Label(i),
			Href:  catalog.Href(rec, i),
			Image: imagePtr(FindSlot(images, ServiceSlot(i))),
			Price: ParsePrice(rec.Price),
		}
		if rec.Description != nil {
			card.Description = *rec.Description
		}
		out = append(out, card)
		return true
	})
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
