package gateway

import (
	"context"
	"strings"

	"site-search/domain"
	"site-search/driver"
	"site-search/port"
	"site-search/retry"
)

// ContentDriver is the slice of the database driver the gateway depends on.
type ContentDriver interface {
	FindContent(ctx context.Context, collection port.Collection, locale string, patterns []string, limit int) ([]driver.ContentRow, error)
}

// ContentStoreGateway adapts the database driver to port.ContentStore,
// wrapping each lookup in a retry and translating rows into records.
type ContentStoreGateway struct {
	driver    ContentDriver
	retryOpts []retry.Option
}

func NewContentStoreGateway(driver ContentDriver, retryOpts ...retry.Option) *ContentStoreGateway {
	return &ContentStoreGateway{
		driver:    driver,
		retryOpts: retryOpts,
	}
}

func (g *ContentStoreGateway) Find(ctx context.Context, collection port.Collection, q port.FindQuery) ([]port.Record, error) {
	patterns := likePatterns(q.Terms)
	if len(patterns) == 0 {
		return []port.Record{}, nil
	}

	rows, err := retry.Do(ctx, func(ctx context.Context) ([]driver.ContentRow, error) {
		return g.driver.FindContent(ctx, collection, string(q.Locale), patterns, q.Limit)
	}, g.retryOpts...)
	if err != nil {
		return nil, &domain.RepositoryError{
			Op:  "Find " + string(collection),
			Err: err.Error(),
		}
	}

	records := make([]port.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, convertToRecord(row))
	}
	return records, nil
}

func convertToRecord(row driver.ContentRow) port.Record {
	rec := port.Record{
		ID:   row.ID,
		Slug: row.Slug,
	}
	if row.Title != nil {
		rec.Title = *row.Title
	}
	if row.Excerpt != nil {
		rec.Description = *row.Excerpt
	}
	return rec
}

// likePatterns turns search terms into ILIKE substring patterns, escaping
// the LIKE metacharacters so user input cannot widen the match.
func likePatterns(terms []string) []string {
	patterns := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		patterns = append(patterns, "%"+escapeLike(term)+"%")
	}
	return patterns
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
