package seo

import (
	"html/template"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

const schemaContext = "https://schema.org"

// SoftwareSourceCode describes a block as source code
type SoftwareSourceCode struct {
	Context             string   `json:"@context"`
	Type                string   `json:"@type"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	URL                 string   `json:"url"`
	CodeRepository      string   `json:"codeRepository,omitempty"`
	ProgrammingLanguage string   `json:"programmingLanguage"`
	RuntimePlatform     string   `json:"runtimePlatform"`
	Keywords            []string `json:"keywords,omitempty"`
	Image               string   `json:"image,omitempty"`
}

// BreadcrumbList is the navigation trail of a page
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// ListItem is one breadcrumb
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// Crumb is a breadcrumb as rendered on the page
type Crumb struct {
	Name string
	Path string
}

// Breadcrumbs returns Home > category > block, skipping the category when
// the block has none
func Breadcrumbs(b types.Block) []Crumb {
	crumbs := []Crumb{{Name: "Home", Path: "/"}}
	if primary, ok := b.PrimaryCategory(); ok {
		crumbs = append(crumbs, Crumb{Name: primary.Title, Path: "/categories/" + primary.Name})
	} else {
		crumbs = append(crumbs, Crumb{Name: "Blocks", Path: "/blocks"})
	}
	return append(crumbs, Crumb{Name: b.Title, Path: "/blocks/" + b.Name})
}

// BlockSchemas returns the structured data of a block page
func BlockSchemas(site Site, b types.Block) (SoftwareSourceCode, BreadcrumbList) {
	keywords := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		keywords = append(keywords, c.Name)
	}

	code := SoftwareSourceCode{
		Context:             schemaContext,
		Type:                "SoftwareSourceCode",
		Name:                b.Title,
		Description:         b.Description,
		URL:                 site.URL("/blocks/" + b.Name),
		CodeRepository:      site.URL("/r/" + b.Name + ".json"),
		ProgrammingLanguage: "TypeScript",
		RuntimePlatform:     "React",
		Keywords:            keywords,
		Image:               site.AbsoluteImage(b.Image),
	}

	crumbs := Breadcrumbs(b)
	list := BreadcrumbList{
		Context:         schemaContext,
		Type:            "BreadcrumbList",
		ItemListElement: make([]ListItem, len(crumbs)),
	}
	for i, c := range crumbs {
		list.ItemListElement[i] = ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
			Item:     site.URL(c.Path),
		}
	}

	return code, list
}

// BlockJSONLD renders the block's structured data for a script tag
func BlockJSONLD(site Site, b types.Block) (template.JS, error) {
	code, crumbs := BlockSchemas(site, b)
	// ConfigStd escapes <, > and & so the payload cannot close the script tag
	data, err := sonic.ConfigStd.Marshal([]interface{}{code, crumbs})
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}
