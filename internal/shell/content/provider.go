package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/titancargo/courier-site/internal/core/domain"
	"github.com/titancargo/courier-site/internal/shell/store"
)

// =============================================================================
// Sources
// =============================================================================

// Source fetches the landing page a site is rendered from.
type Source interface {
	Load(ctx context.Context) (*domain.LandingPage, error)
}

// StoreSource reads the landing page from the content store: the page with
// the configured id, or the most recently published page when id is empty.
type StoreSource struct {
	Store store.Store
	ID    string
}

// Load implements Source.
func (s StoreSource) Load(ctx context.Context) (*domain.LandingPage, error) {
	if s.ID != "" {
		return s.Store.GetLandingPage(ctx, s.ID)
	}
	return s.Store.GetPublishedLandingPage(ctx)
}

// FileSource reads the landing page from a bundle file on every call, so
// edits show up without a restart.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(_ context.Context) (*domain.LandingPage, error) {
	return LoadFile(s.Path)
}

// =============================================================================
// Provider
// =============================================================================

// Provider supplies a landing page per request and never fails: when the
// source errors, the fallback landing page is returned and a warning logged.
type Provider struct {
	source Source
	logger *slog.Logger
}

// NewProvider creates a provider backed by source.
func NewProvider(source Source, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{source: source, logger: logger}
}

// Load returns the current landing page or the fallback.
func (p *Provider) Load(ctx context.Context) domain.LandingPage {
	if p.source == nil {
		return Fallback()
	}
	page, err := p.source.Load(ctx)
	if err != nil {
		p.logger.Warn("landing page unavailable, using fallback", "error", err)
		return Fallback()
	}
	if page == nil {
		return Fallback()
	}
	return *page
}

// Ping checks the underlying source when it can be checked.
func (p *Provider) Ping(ctx context.Context) error {
	type pinger interface {
		Ping(ctx context.Context) error
	}
	switch src := p.source.(type) {
	case StoreSource:
		return src.Store.Ping(ctx)
	case pinger:
		return src.Ping(ctx)
	case FileSource:
		if _, err := src.Load(ctx); err != nil {
			return fmt.Errorf("content file: %w", err)
		}
	}
	return nil
}

// =============================================================================
// Fallback
// =============================================================================

// Fallback theme colours.
const (
	FallbackPrimaryColor   = "#0ea5e9"
	FallbackSecondaryColor = "#0f172a"
	FallbackAccentColor    = "#22c55e"
)

// Fallback returns the landing page rendered when no content is available.
// Every catalog is empty.
func Fallback() domain.LandingPage {
	return domain.LandingPage{
		ID:           "fallback",
		BusinessName: "Business",
		Status:       domain.PageStatusPublished,
		ThemeData: domain.ThemeData{
			PrimaryColor:   FallbackPrimaryColor,
			SecondaryColor: FallbackSecondaryColor,
			AccentColor:    FallbackAccentColor,
		},
		SEOData: domain.SEOData{
			Title:       "Business Template",
			Description: "Professional business website template",
			IsIndex:     true,
		},
		Images: []domain.Image{},
	}
}
