package view

import (
	"strings"

	"github.com/titancargo/courier-site/internal/core/domain"
)

// Home is the render model of the landing page.
type Home struct {
	Layout       Layout              `json:"layout"`
	Hero         Hero                `json:"hero"`
	Services     ServicesSection     `json:"services"`
	Testimonials TestimonialsSection `json:"testimonials"`
	Gallery      GallerySection      `json:"gallery"`
}

// Hero is the top banner.
type Hero struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	CTA         domain.CTA `json:"cta"`
	Image       *ImageRef  `json:"image,omitempty"`
}

// TestimonialsSection is the testimonials carousel.
type TestimonialsSection struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Testimonials []domain.Testimonial `json:"testimonials"`
}

// GallerySection is the image gallery.
type GallerySection struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Images      []ImageRef `json:"images"`
}

// DefaultHeroCTA points at the services section of the landing page.
var DefaultHeroCTA = domain.CTA{Href: "#services", Label: "Explore Services"}

// NewHome builds the landing page model.
func NewHome(page domain.LandingPage) Home {
	return Home{
		Layout:       NewLayout(page),
		Hero:         newHero(page),
		Services:     NewServicesSection(page),
		Testimonials: newTestimonials(page.Content.Testimonials),
		Gallery:      newGallery(page),
	}
}

func newHero(page domain.LandingPage) Hero {
	hero := Hero{
		CTA:   DefaultHeroCTA,
		Image: imagePtr(FindSlotOrCategory(page.Images, "hero-image-1", "hero")),
	}
	if h := page.Content.Hero; h != nil {
		hero.Title = h.Title
		hero.Subtitle = h.Subtitle
		hero.Description = h.Description
		if h.CTAButton != nil {
			hero.CTA = *h.CTAButton
		}
	}
	return hero
}

func newTestimonials(t *domain.TestimonialsContent) TestimonialsSection {
	out := TestimonialsSection{
		Title:        DefaultTestimonialsTitle,
		Testimonials: []domain.Testimonial{},
	}
	if t == nil {
		return out
	}
	out.Title = orDefault(t.Title, DefaultTestimonialsTitle)
	out.Description = t.Description
	if t.Testimonials != nil {
		out.Testimonials = t.Testimonials
	}
	return out
}

func newGallery(page domain.LandingPage) GallerySection {
	out := GallerySection{Title: DefaultGalleryTitle, Images: []ImageRef{}}
	if g := page.Content.Gallery; g != nil {
		out.Title = orDefault(g.Title, DefaultGalleryTitle)
		out.Description = g.Description
	}
	for _, img := range page.Images {
		if img.Category == "gallery" || img.SlotName == "gallery" {
			out.Images = append(out.Images, toRef(img))
		}
	}
	return out
}

// AboutImages returns the images of the about-us page: slots containing
// "about" or images tagged with the about category.
func AboutImages(images []domain.Image) []ImageRef {
	out := []ImageRef{}
	for _, img := range images {
		if img.Category == "about" || strings.Contains(img.SlotName, "about") {
			out = append(out, toRef(img))
		}
	}
	return out
}
