// Package sitemap computes the sitemap.xml entries of the site.
// This is part of the Functional Core - all functions are pure with no I/O.
package sitemap

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/titancargo/courier-site/internal/core/catalog"
	"github.com/titancargo/courier-site/internal/core/domain"
)

// DefaultBaseURL is used when no public site URL is configured.
const DefaultBaseURL = "https://www.example.com"

// Namespace is the sitemap protocol XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Priorities of the generated entries.
const (
	PriorityHome    = 1.0
	PriorityStatic  = 0.8
	PriorityService = 0.7
)

// staticPaths are listed after "/" in this order.
var staticPaths = []string{
	"/about-us",
	"/contact-us",
	"/services",
	"/services/moving",
	"/services/cargo",
	"/reviews",
}

// URLSet is the root element of sitemap.xml.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one sitemap entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// NormalizeBaseURL trims one trailing slash and falls back to
// DefaultBaseURL when empty.
func NormalizeBaseURL(base string) string {
	base = strings.TrimSuffix(strings.TrimSpace(base), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}

// Build lists the static routes followed by one entry per catalog service
// whose path is not already present.
func Build(baseURL string, services []domain.ServiceRecord, now time.Time) URLSet {
	base := NormalizeBaseURL(baseURL)
	lastMod := now.UTC().Format(time.RFC3339)

	set := URLSet{XMLNS: Namespace}
	seen := map[string]bool{}
	add := func(path string, priority float64) {
		if seen[path] {
			return
		}
		seen[path] = true
		set.URLs = append(set.URLs, URL{
			Loc:        base + path,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   priority,
		})
	}

	add("/", PriorityHome)
	for _, p := range staticPaths {
		add(p, PriorityStatic)
	}
	catalog.NewServices(services).Each(func(i int, rec domain.ServiceRecord) bool {
		add(catalog.Href(rec, i), PriorityService)
		return true
	})
	return set
}
