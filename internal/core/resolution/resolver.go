package resolution

import (
	"strconv"

	"github.com/titancargo/courier-site/internal/core/catalog"
	"github.com/titancargo/courier-site/internal/core/domain"
)

// =============================================================================
// Service Resolver
// =============================================================================

// ResolvedService is the outcome of matching a route parameter against the
// service catalog.
type ResolvedService struct {
	Service      *domain.ServiceRecord // nil when unmatched
	OrdinalIndex int                   // -1 when unmatched
	TitleText    string                // never empty
	Slug         string                // Slugify(TitleText)
}

// Found reports whether a catalog entry matched.
func (r ResolvedService) Found() bool {
	return r.Service != nil
}

// Resolve finds the first catalog entry whose id or route slug equals
// routeParam. Ids are compared exactly (case-sensitive); slugs are derived
// from title, then name, then "service-{i+1}".
//
// Resolve never fails: an empty catalog or an unknown parameter yields
// OrdinalIndex -1 and the title "Service".
func Resolve(services []domain.ServiceRecord, routeParam string) ResolvedService {
	cat := catalog.NewServices(services)

	match := -1
	cat.Each(func(i int, rec domain.ServiceRecord) bool {
		if rec.ID.String() == routeParam || catalog.RouteSlug(rec, i) == routeParam {
			match = i
			return false
		}
		return true
	})

	if match < 0 {
		return ResolvedService{
			OrdinalIndex: -1,
			TitleText:    "Service",
			Slug:         domain.Slugify("Service"),
		}
	}

	rec, _ := cat.At(match)
	title := catalog.DisplayTitle(rec, match)
	if title == "" {
		title = "Service " + strconv.Itoa(match+1)
	}
	return ResolvedService{
		Service:      &rec,
		OrdinalIndex: match,
		TitleText:    title,
		Slug:         domain.Slugify(title),
	}
}
