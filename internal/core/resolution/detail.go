package resolution

import (
	"strings"

	"github.com/titancargo/courier-site/internal/core/domain"
)

// =============================================================================
// Detail Resolution
// =============================================================================

// ResolvedDetail is the render-ready shape of a matched details block.
type ResolvedDetail struct {
	Found       bool                   `json:"-"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Sections    []domain.DetailSection `json:"sections"`
	FAQs        []QA                   `json:"faqs"`
}

// HasContent reports whether anything in the block is worth rendering.
func (d ResolvedDetail) HasContent() bool {
	return d.Description != "" || len(d.Sections) > 0 || len(d.FAQs) > 0
}

// ResolveDetails matches the details block for svc and shapes it for
// rendering. The description is copied as is, whitespace included.
// Sections with neither title nor text are removed and blank FAQ entries
// are skipped. Sections and FAQs are never nil.
func ResolveDetails(details []domain.ServiceDetailRecord, svc ResolvedService) ResolvedDetail {
	out := ResolvedDetail{
		Sections: []domain.DetailSection{},
		FAQs:     []QA{},
	}

	rec, ok := MatchDetail(details, svc.TitleText, svc.OrdinalIndex)
	if !ok {
		return out
	}
	out.Found = true
	if rec.Title != nil {
		out.Title = *rec.Title
	}
	out.Description = rec.Content.Description

	for _, s := range rec.Content.Sections {
		if strings.TrimSpace(s.Title) == "" && strings.TrimSpace(s.Text) == "" {
			continue
		}
		out.Sections = append(out.Sections, s)
	}
	for _, raw := range rec.Content.FAQs {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out.FAQs = append(out.FAQs, ParseFAQ(raw))
	}
	return out
}
