// Package resources provides JSON:API resource implementations for the
// courier site API.
package resources

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/manyminds/api2go"

	"github.com/titancargo/courier-site/internal/core/catalog"
	"github.com/titancargo/courier-site/internal/core/domain"
	"github.com/titancargo/courier-site/internal/core/resolution"
	"github.com/titancargo/courier-site/internal/core/view"
)

// =============================================================================
// Service JSON:API Model
// =============================================================================

// Service is the JSON:API representation of one catalog entry.
type Service struct {
	ID          string                     `json:"-"`
	Title       string                     `json:"title"`
	Description string                     `json:"description,omitempty"`
	Price       *float64                   `json:"price,omitempty"`
	Features    []string                   `json:"features"`
	CTA         *domain.CTA                `json:"cta,omitempty"`
	Href        string                     `json:"href"`
	Position    int                        `json:"position"`
	Image       *view.ImageRef             `json:"image,omitempty"`
	Details     *resolution.ResolvedDetail `json:"details,omitempty"`
}

// GetID returns the service ID for JSON:API.
func (s Service) GetID() string {
	return s.ID
}

// SetID sets the service ID for JSON:API.
func (s *Service) SetID(id string) error {
	s.ID = id
	return nil
}

// GetName returns the JSON:API resource type name.
func (s Service) GetName() string {
	return "services"
}

// ServiceFromRecord converts the catalog entry at position i. The JSON:API
// id is the last segment of the entry's canonical link, so it can be fed
// back into /services/{id}.
func ServiceFromRecord(rec domain.ServiceRecord, i int, images []domain.Image) Service {
	href := catalog.Href(rec, i)
	svc := Service{
		ID:       strings.TrimPrefix(href, "/services/"),
		Title:    catalog.DisplayTitle(rec, i),
		Price:    view.ParsePrice(rec.Price),
		Features: view.NormalizeFeatures(rec.Features),
		CTA:      view.ExtractCTA(rec.CTA),
		Href:     href,
		Position: i,
	}
	if rec.Description != nil {
		svc.Description = *rec.Description
	}
	if img, ok := view.FindSlot(images, view.ServiceSlot(i)); ok {
		svc.Image = &img
	}
	return svc
}

// =============================================================================
// ServiceResource - Read Operations
// =============================================================================

// PageLoader supplies the landing page the catalog is read from.
type PageLoader interface {
	Load(ctx context.Context) domain.LandingPage
}

// ServiceResource implements the api2go read interfaces for services.
// The catalog is owned by the content bundle, so no write methods exist.
type ServiceResource struct {
	Pages PageLoader
}

// NewServiceResource creates a new service resource handler.
func NewServiceResource(pages PageLoader) *ServiceResource {
	return &ServiceResource{Pages: pages}
}

// FindAll returns the catalog in order.
// GET /api/v1/services
func (r ServiceResource) FindAll(req api2go.Request) (api2go.Responder, error) {
	page := r.Pages.Load(req.PlainRequest.Context())
	services := page.Services()

	limit, offset := pagination(req, len(services))

	result := make([]Service, 0, len(services))
	for i, rec := range services {
		if i < offset || len(result) >= limit {
			continue
		}
		result = append(result, ServiceFromRecord(rec, i, page.Images))
	}

	return &Response{
		Code: http.StatusOK,
		Res:  result,
		Meta: map[string]interface{}{
			"total":  len(services),
			"limit":  limit,
			"offset": offset,
		},
	}, nil
}

// FindOne resolves id the same way the service detail page does and
// includes the matched details block.
// GET /api/v1/services/{id}
func (r ServiceResource) FindOne(id string, req api2go.Request) (api2go.Responder, error) {
	page := r.Pages.Load(req.PlainRequest.Context())

	resolved := resolution.Resolve(page.Services(), id)
	if !resolved.Found() {
		return &Response{Code: http.StatusNotFound}, api2go.NewHTTPError(
			fmt.Errorf("service %q not found", id),
			"Service not found",
			http.StatusNotFound,
		)
	}

	svc := ServiceFromRecord(*resolved.Service, resolved.OrdinalIndex, page.Images)
	if detail := resolution.ResolveDetails(page.ServiceDetails(), resolved); detail.Found {
		svc.Details = &detail
	}

	return &Response{
		Code: http.StatusOK,
		Res:  svc,
	}, nil
}

// pagination reads page[size]/page[offset] and page[number]. Without a size
// the whole catalog is one page.
func pagination(req api2go.Request, total int) (limit, offset int) {
	limit = total
	if size, ok := req.QueryParams["page[size]"]; ok && len(size) > 0 {
		if l, err := strconv.Atoi(size[0]); err == nil && l > 0 {
			limit = l
		}
	}
	if off, ok := req.QueryParams["page[offset]"]; ok && len(off) > 0 {
		if o, err := strconv.Atoi(off[0]); err == nil && o > 0 {
			offset = o
		}
	}
	if num, ok := req.QueryParams["page[number]"]; ok && len(num) > 0 {
		if n, err := strconv.Atoi(num[0]); err == nil && n > 0 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}

// =============================================================================
// Response Helper
// =============================================================================

// Response implements api2go.Responder.
type Response struct {
	Code int
	Res  interface{}
	Meta map[string]interface{}
}

// Metadata returns additional metadata for the response.
func (r *Response) Metadata() map[string]interface{} {
	return r.Meta
}

// Result returns the response data.
func (r *Response) Result() interface{} {
	return r.Res
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.Code
}
