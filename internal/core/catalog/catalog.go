// Package catalog provides read-only views over the service catalog and the
// service details blocks of a landing page.
// This is part of the Functional Core - all functions are pure with no I/O.
package catalog

import (
	"strconv"

	"github.com/titancargo/courier-site/internal/core/domain"
)

// =============================================================================
// Service Catalog
// =============================================================================

// Services is an ordered, read-only view over service records indexed by
// position. The zero value is an empty catalog.
type Services struct {
	records []domain.ServiceRecord
}

// NewServices wraps records without copying them. Callers must not mutate
// the slice afterwards.
func NewServices(records []domain.ServiceRecord) Services {
	return Services{records: records}
}

// Len returns the number of records.
func (s Services) Len() int {
	return len(s.records)
}

// At returns the record at position i.
func (s Services) At(i int) (domain.ServiceRecord, bool) {
	if i < 0 || i >= len(s.records) {
		return domain.ServiceRecord{}, false
	}
	return s.records[i], true
}

// Each calls fn for every record in catalog order until fn returns false.
func (s Services) Each(fn func(i int, rec domain.ServiceRecord) bool) {
	for i, rec := range s.records {
		if !fn(i, rec) {
			return
		}
	}
}

// Label returns the display label of the record at position i:
// title, then name, then "Service {i+1}".
func (s Services) Label(i int) string {
	rec, _ := s.At(i)
	return DisplayTitle(rec, i)
}

// DisplayTitle returns title ?? name ?? "Service {i+1}".
func DisplayTitle(rec domain.ServiceRecord, i int) string {
	if rec.Title != nil {
		return *rec.Title
	}
	if rec.Name != nil {
		return *rec.Name
	}
	return "Service " + strconv.Itoa(i+1)
}

// RouteLabel returns the label used to derive a record's route slug:
// title, then name, then "service-{i+1}".
func RouteLabel(rec domain.ServiceRecord, i int) string {
	if rec.Title != nil {
		return *rec.Title
	}
	if rec.Name != nil {
		return *rec.Name
	}
	return "service-" + strconv.Itoa(i+1)
}

// RouteSlug returns the slug a record answers to under /services/{slug}.
func RouteSlug(rec domain.ServiceRecord, i int) string {
	return domain.Slugify(RouteLabel(rec, i))
}

// Href returns the canonical link to the record's detail page. The slug of
// the display title is preferred; when it is empty the id, or the 1-based
// position, is used instead.
func Href(rec domain.ServiceRecord, i int) string {
	if slug := domain.Slugify(DisplayTitle(rec, i)); slug != "" {
		return "/services/" + slug
	}
	if rec.ID.Present && rec.ID.String() != "" {
		return "/services/" + rec.ID.String()
	}
	return "/services/" + strconv.Itoa(i+1)
}

// =============================================================================
// Service Details Catalog
// =============================================================================

// Details is an ordered, read-only view over service details blocks.
type Details struct {
	records []domain.ServiceDetailRecord
}

// NewDetails wraps records without copying them.
func NewDetails(records []domain.ServiceDetailRecord) Details {
	return Details{records: records}
}

// Len returns the number of blocks.
func (d Details) Len() int {
	return len(d.records)
}

// At returns the block at position i.
func (d Details) At(i int) (domain.ServiceDetailRecord, bool) {
	if i < 0 || i >= len(d.records) {
		return domain.ServiceDetailRecord{}, false
	}
	return d.records[i], true
}

// Each calls fn for every block in order until fn returns false.
func (d Details) Each(fn func(i int, rec domain.ServiceDetailRecord) bool) {
	for i, rec := range d.records {
		if !fn(i, rec) {
			return
		}
	}
}

// Title returns the block's title, or "" when it has none.
func Title(rec domain.ServiceDetailRecord) string {
	if rec.Title == nil {
		return ""
	}
	return *rec.Title
}
