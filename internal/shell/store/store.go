package store

import (
	"context"

	"github.com/titancargo/courier-site/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for landing pages.
type Store interface {
	// Landing page operations
	GetLandingPage(ctx context.Context, id string) (*domain.LandingPage, error)
	GetPublishedLandingPage(ctx context.Context) (*domain.LandingPage, error)
	SaveLandingPage(ctx context.Context, page *domain.LandingPage) error
	DeleteLandingPage(ctx context.Context, id string) error
	ListLandingPages(ctx context.Context, opts ListOptions) ([]domain.LandingPage, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// =============================================================================
// Options
// =============================================================================

// ListOptions defines pagination and filtering options.
type ListOptions struct {
	Limit  int
	Offset int
	Status domain.PageStatus // empty lists every status
}

// DefaultListOptions returns default list options.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Limit:  100,
		Offset: 0,
	}
}

// Normalize ensures list options have valid values.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 100
	}
	if o.Limit > 1000 {
		o.Limit = 1000
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
