package resolution

import (
	"regexp"
	"strings"

	"github.com/titancargo/courier-site/internal/core/catalog"
	"github.com/titancargo/courier-site/internal/core/domain"
)

// =============================================================================
// Service Classification
// =============================================================================

var (
	cargoLike  = regexp.MustCompile(`(?i)(cargo|courier|same-day|medical|furniture|appliance)`)
	movingLike = regexp.MustCompile(`(?i)(moving|mover|relocation|furniture)`)
)

// Kind is the keyword family a service slug belongs to.
type Kind int

const (
	KindOther Kind = iota
	KindCargo
	KindMoving
)

// Classify reports the keyword family of a slug for detail matching.
//
// "furniture" belongs to both families. Cargo is checked first, so a
// furniture service is classified as cargo. This ordering is kept for
// compatibility with existing content; it is ambiguous business logic.
func Classify(slug string) Kind {
	switch {
	case cargoLike.MatchString(slug):
		return KindCargo
	case movingLike.MatchString(slug):
		return KindMoving
	default:
		return KindOther
	}
}

// =============================================================================
// Detail Matcher
// =============================================================================

// MatchDetail finds the details block for a resolved service. Strategies
// are tried in order and the first hit wins:
//
//  1. slug equality, or substring overlap when both slugs are non-empty
//  2. keyword family: "cargo"/"courier" titles for cargo-like services,
//     "moving" titles for moving-like services
//  3. positional alignment with the service's ordinal index
//
// A missing block renders worse than a loosely matched one, so precision is
// traded for availability.
func MatchDetail(details []domain.ServiceDetailRecord, titleText string, ordinalIndex int) (domain.ServiceDetailRecord, bool) {
	cat := catalog.NewDetails(details)
	currentSlug := domain.Slugify(titleText)

	if rec, ok := matchBySlug(cat, currentSlug); ok {
		return rec, true
	}
	if rec, ok := matchByKeyword(cat, Classify(currentSlug)); ok {
		return rec, true
	}
	return cat.At(ordinalIndex)
}

func matchBySlug(cat catalog.Details, currentSlug string) (domain.ServiceDetailRecord, bool) {
	var found domain.ServiceDetailRecord
	ok := false
	cat.Each(func(_ int, rec domain.ServiceDetailRecord) bool {
		detailSlug := domain.Slugify(catalog.Title(rec))
		if slugsOverlap(detailSlug, currentSlug) {
			found, ok = rec, true
			return false
		}
		return true
	})
	return found, ok
}

func slugsOverlap(detailSlug, currentSlug string) bool {
	if detailSlug == currentSlug {
		return true
	}
	if detailSlug == "" || currentSlug == "" {
		return false
	}
	return strings.Contains(detailSlug, currentSlug) || strings.Contains(currentSlug, detailSlug)
}

func matchByKeyword(cat catalog.Details, kind Kind) (domain.ServiceDetailRecord, bool) {
	if kind == KindOther {
		return domain.ServiceDetailRecord{}, false
	}
	var found domain.ServiceDetailRecord
	ok := false
	cat.Each(func(_ int, rec domain.ServiceDetailRecord) bool {
		title := strings.ToLower(catalog.Title(rec))
		var hit bool
		if kind == KindCargo {
			hit = strings.Contains(title, "cargo") || strings.Contains(title, "courier")
		} else {
			hit = strings.Contains(title, "moving")
		}
		if hit {
			found, ok = rec, true
			return false
		}
		return true
	})
	return found, ok
}
