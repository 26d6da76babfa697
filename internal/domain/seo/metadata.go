package seo

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Metadata is the head metadata of one page
type Metadata struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Keywords    []string
	Type        string // og:type
	NoIndex     bool
}

// Site describes the deployment pages are rendered for
type Site struct {
	Name        string
	BaseURL     string
	Description string
}

// NewSite creates a site with a normalised base URL
func NewSite(name, baseURL string) Site {
	return Site{
		Name:        name,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Description: "Copy-paste UI blocks for landing pages, auth flows and dashboards. Preview them live, then install with one command.",
	}
}

// URL returns the absolute URL of a path
func (s Site) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.BaseURL + path
}

// AbsoluteImage resolves a root-relative image against the site
func (s Site) AbsoluteImage(image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return s.URL(image)
}

func (s Site) title(parts ...string) string {
	return strings.Join(append(parts, s.Name), " | ")
}

// Home returns the home page metadata
func (s Site) Home() Metadata {
	return Metadata{
		Title:       s.Name,
		Description: s.Description,
		Canonical:   s.URL("/"),
		Keywords:    []string{"ui blocks", "components", "tailwind", "react", "shadcn"},
		Type:        "website",
	}
}

// Catalog returns the block listing metadata
func (s Site) Catalog() Metadata {
	return Metadata{
		Title:       s.title("All Blocks"),
		Description: "Browse every block in the registry. " + s.Description,
		Canonical:   s.URL("/blocks"),
		Keywords:    []string{"ui blocks", "components"},
		Type:        "website",
	}
}

// Category returns a category page's metadata
func (s Site) Category(c types.Category) Metadata {
	desc := c.Description
	if desc == "" {
		desc = fmt.Sprintf("%s blocks ready to copy into your project.", c.Title)
	}
	return Metadata{
		Title:       s.title(c.Title),
		Description: desc,
		Canonical:   s.URL("/categories/" + c.Name),
		Keywords:    []string{c.Name, strings.ToLower(c.Title), "ui blocks"},
		Type:        "website",
	}
}

// Block returns a block page's metadata. The primary category leads the title.
func (s Site) Block(b types.Block) Metadata {
	parts := []string{b.Title}
	if primary, ok := b.PrimaryCategory(); ok {
		parts = append(parts, primary.Title)
	}

	keywords := []string{b.Name}
	for _, c := range b.Categories {
		keywords = append(keywords, c.Name)
	}
	keywords = append(keywords, b.Dependencies...)

	return Metadata{
		Title:       s.title(parts...),
		Description: b.Description,
		Canonical:   s.URL("/blocks/" + b.Name),
		Image:       s.AbsoluteImage(b.Image),
		Keywords:    keywords,
		Type:        "article",
	}
}

// NotFound returns metadata for missing pages
func (s Site) NotFound() Metadata {
	return Metadata{
		Title:       s.title("Not Found"),
		Description: "The page you are looking for does not exist.",
		NoIndex:     true,
	}
}

// Robots returns robots.txt pointing at the sitemap
func (s Site) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /preview/\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /ws/\n")
	fmt.Fprintf(&b, "\nSitemap: %s\n", s.URL("/sitemap.xml"))
	return b.String()
}
