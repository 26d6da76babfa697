package seo

import (
	"encoding/xml"
	"time"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// SitemapNamespace is the sitemaps.org schema
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Change frequencies
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

// Source is the catalog view a sitemap is built from
type Source interface {
	All() []types.Block
	Categories() []types.Category
}

// URLSet is a sitemap document
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one sitemap entry
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// Sitemap lists the static pages, each referenced category and each block
func Sitemap(site Site, src Source, now time.Time) URLSet {
	lastMod := now.UTC().Format("2006-01-02")

	set := URLSet{
		Xmlns: SitemapNamespace,
		URLs: []URL{
			{Loc: site.URL("/"), LastMod: lastMod, ChangeFreq: Weekly, Priority: 1.0},
			{Loc: site.URL("/blocks"), LastMod: lastMod, ChangeFreq: Weekly, Priority: 0.9},
		},
	}

	for _, c := range src.Categories() {
		set.URLs = append(set.URLs, URL{
			Loc:        site.URL("/categories/" + c.Name),
			LastMod:    lastMod,
			ChangeFreq: Weekly,
			Priority:   0.8,
		})
	}

	for _, b := range src.All() {
		set.URLs = append(set.URLs, URL{
			Loc:        site.URL("/blocks/" + b.Name),
			LastMod:    lastMod,
			ChangeFreq: Monthly,
			Priority:   0.7,
		})
	}

	return set
}

// Marshal renders the sitemap with the XML declaration
func (u URLSet) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(u, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
