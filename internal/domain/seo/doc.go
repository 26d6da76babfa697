// Package seo builds page metadata, the sitemap, robots.txt and JSON-LD
// from catalog data. Everything here is a pure function of its inputs.
package seo
