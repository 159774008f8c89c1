package domain

import (
	"fmt"
	"net/url"
)

// SourceKind identifies which content collection produced a search result.
type SourceKind string

const (
	SourcePage        SourceKind = "page"
	SourceArticle     SourceKind = "article"
	SourceProduct     SourceKind = "product"
	SourceBundleGood  SourceKind = "bundle-good"
	SourceJobPosition SourceKind = "job-position"
	SourceCategory    SourceKind = "category"
)

// UntitledFallback replaces a missing title on a source record.
const UntitledFallback = "Untitled"

// SearchResult is the unit returned to callers. Immutable after
// construction.
type SearchResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	SourceKind  SourceKind `json:"sourceKind"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
}

// NewSearchResult builds the canonical result for one raw record. The id
// carries the source kind as a prefix so records from different
// collections cannot collide in a merged response.
func NewSearchResult(kind SourceKind, rawID, title, slug, description string, locale Locale) SearchResult {
	if title == "" {
		title = UntitledFallback
	}
	return SearchResult{
		ID:          fmt.Sprintf("%s-%s", kind, rawID),
		Title:       title,
		SourceKind:  kind,
		Slug:        slug,
		Description: description,
		URL:         buildURL(kind, slug, title, locale),
	}
}

// buildURL constructs the locale-prefixed site path for one result.
func buildURL(kind SourceKind, slug, title string, locale Locale) string {
	prefix := "/" + string(locale)
	switch kind {
	case SourcePage:
		if slug == "" || slug == "home" {
			return prefix
		}
		return prefix + "/" + slug
	case SourceProduct:
		return prefix + "/products/" + slug
	case SourceBundleGood:
		return prefix + "/goods?search=" + url.QueryEscape(title)
	case SourceArticle:
		return prefix + "/posts/" + slug
	case SourceCategory:
		return prefix + "/goods?category=" + url.QueryEscape(slug)
	case SourceJobPosition:
		return prefix + "/positions/" + slug
	default:
		return prefix + "/" + slug
	}
}
