package port

import (
	"context"

	"site-search/domain"
)

// Collection names the content tables a search can target.
type Collection string

const (
	CollectionPages      Collection = "pages"
	CollectionArticles   Collection = "articles"
	CollectionProducts   Collection = "products"
	CollectionGoods      Collection = "goods"
	CollectionPositions  Collection = "positions"
	CollectionCategories Collection = "categories"
)

// FindQuery carries one collection lookup. Terms are matched as
// case-insensitive substrings against the title and slug columns; a row
// matching any term qualifies.
type FindQuery struct {
	Terms  []string
	Locale domain.Locale
	Limit  int
}

// Record is a matched content row before URL and identity assembly.
type Record struct {
	ID          string
	Title       string
	Slug        string
	Description string
}

type ContentStore interface {
	Find(ctx context.Context, collection Collection, q FindQuery) ([]Record, error)
}
