// Package sitemap renders sitemaps.org urlsets for the public site.
package sitemap

import (
	"encoding/xml"
	"strings"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticRoutes are the public pages of the site.
var StaticRoutes = []string{
	"/",
	"/about",
	"/team",
	"/research",
	"/mentorship",
	"/mentorship/apply",
	"/collaboration",
	"/programs",
	"/media",
	"/contact",
	"/testimonials",
	"/testimonials/submit",
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []entry  `xml:"url"`
}

type entry struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Build renders a sitemap for the static routes followed by extra paths.
// The root page gets priority 1.0, everything else 0.8, all weekly.
func Build(baseURL string, extra ...string) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")

	seen := make(map[string]struct{}, len(StaticRoutes)+len(extra))
	set := urlset{XMLNS: namespace}
	for _, route := range append(append([]string(nil), StaticRoutes...), extra...) {
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		if _, dup := seen[route]; dup {
			continue
		}
		seen[route] = struct{}{}

		priority := "0.8"
		if route == "/" {
			priority = "1.0"
		}
		set.URLs = append(set.URLs, entry{
			Loc:        base + route,
			ChangeFreq: "weekly",
			Priority:   priority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
