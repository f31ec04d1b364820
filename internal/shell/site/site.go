// Package site serves the server-rendered pages of the courier site.
package site

import (
	"bytes"
	"context"
	"embed"
	"encoding/xml"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/titancargo/courier-site/internal/core/domain"
	"github.com/titancargo/courier-site/internal/core/sitemap"
	"github.com/titancargo/courier-site/internal/core/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages lists the page files, each rendered inside the shared layout.
var pages = []string{
	"home.html",
	"services.html",
	"service.html",
	"contact.html",
	"about.html",
	"reviews.html",
	"notfound.html",
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"price": func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	},
}

// =============================================================================
// Handler
// =============================================================================

// PageLoader supplies the landing page every request is rendered from.
type PageLoader interface {
	Load(ctx context.Context) domain.LandingPage
}

// Config holds the site settings.
type Config struct {
	Pages   PageLoader
	BaseURL string // public origin used in sitemap.xml and robots.txt
	Logger  *slog.Logger
}

// Handler renders the HTML pages.
type Handler struct {
	pages     PageLoader
	baseURL   string
	logger    *slog.Logger
	templates map[string]*template.Template
	now       func() time.Time
}

// NewHandler parses the embedded templates.
func NewHandler(cfg Config) (*Handler, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	h := &Handler{
		pages:     cfg.Pages,
		baseURL:   sitemap.NormalizeBaseURL(cfg.BaseURL),
		logger:    cfg.Logger.With("component", "site"),
		templates: make(map[string]*template.Template, len(pages)),
		now:       time.Now,
	}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/cards.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		h.templates[name] = t
	}
	return h, nil
}

// Routes returns the router with all page routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestIDHeader)

	r.Get("/", h.handleHome)
	r.Get("/services", h.handleServices)
	r.Get("/services/{id}", h.handleService)
	r.Get("/contact-us", h.handleContact)
	r.Get("/about-us", h.handleAbout)
	r.Get("/reviews", h.handleReviews)
	r.Get("/sitemap.xml", h.handleSitemap)
	r.Get("/robots.txt", h.handleRobots)
	r.NotFound(h.handleNotFound)

	return r
}

// requestIDHeader copies the request ID to the response header unless an
// outer router already set one.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("X-Request-ID") == "" {
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Page Handlers
// =============================================================================

type servicesData struct {
	Layout   view.Layout
	Services view.ServicesSection
}

type layoutData struct {
	Layout view.Layout
}

type aboutData struct {
	Layout view.Layout
	About  string
	Images []view.ImageRef
}

type reviewsData struct {
	Layout       view.Layout
	Testimonials view.TestimonialsSection
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	h.render(w, r, http.StatusOK, "home.html", view.NewHome(page))
}

func (h *Handler) handleServices(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	h.render(w, r, http.StatusOK, "services.html", servicesData{
		Layout:   view.NewLayout(page),
		Services: view.NewServicesSection(page),
	})
}

func (h *Handler) handleService(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	model := view.NewServicePage(page, chi.URLParam(r, "id"))

	status := http.StatusOK
	if !model.Found {
		status = http.StatusNotFound
	}
	h.render(w, r, status, "service.html", model)
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	h.render(w, r, http.StatusOK, "contact.html", layoutData{Layout: view.NewLayout(page)})
}

func (h *Handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	data := aboutData{
		Layout: view.NewLayout(page),
		Images: view.AboutImages(page.Images),
	}
	if page.Content.About != nil {
		data.About = page.Content.About.Description
	}
	h.render(w, r, http.StatusOK, "about.html", data)
}

func (h *Handler) handleReviews(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	home := view.NewHome(page)
	h.render(w, r, http.StatusOK, "reviews.html", reviewsData{
		Layout:       home.Layout,
		Testimonials: home.Testimonials,
	})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	h.render(w, r, http.StatusNotFound, "notfound.html", layoutData{Layout: view.NewLayout(page)})
}

// =============================================================================
// Sitemap and Robots
// =============================================================================

func (h *Handler) handleSitemap(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Load(r.Context())
	set := sitemap.Build(h.baseURL, page.Services(), h.now())

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.logger.Error("failed to encode sitemap", "error", err)
		http.Error(w, "failed to encode sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	w.Write(body)
}

// handleRobots allows every page. Per-page indexing is controlled by the
// robots meta tag of the layout.
func (h *Handler) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
}

// =============================================================================
// Helpers
// =============================================================================

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := h.templates[name]
	if !ok {
		h.logger.Error("unknown template", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("failed to render page",
			"template", name,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
