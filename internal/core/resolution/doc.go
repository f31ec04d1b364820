// Package resolution maps a /services/{param} route to a catalog entry and
// to the long-form details block that best describes it.
//
// This package contains the functional core logic of the service detail
// page. All functions are pure (no I/O, no side effects), never fail, and
// degrade to documented fallback values instead.
//
// # Functions
//
//   - Resolve: Match a route parameter (id or slug) against the service catalog
//   - MatchDetail: Pick the details block for a resolved title (slug, keyword, position)
//   - ParseFAQ: Split a free-form FAQ string into a question and an answer
//   - ResolveDetails: Run MatchDetail and shape the block for rendering
//
// # Usage
//
// The page and API handlers in the imperative shell load a landing page and
// feed its catalogs through the pipeline:
//
//	svc := resolution.Resolve(page.Services(), id)
//	detail := resolution.ResolveDetails(page.ServiceDetails(), svc)
package resolution
