// Package view assembles render-ready page models from a landing page.
//
// This package contains the functional core of the page layer. Every
// function takes the landing page explicitly, performs no I/O and never
// fails: missing content degrades to defaults and empty lists.
//
// # Models
//
//   - Layout: brand, theme, SEO and contact chrome shared by every page
//   - ServicePage: the /services/{id} detail page
//   - ServiceCard: one entry of the services listing
//   - Home: hero, services, testimonials and gallery of the landing page
package view
