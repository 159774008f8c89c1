package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"site-search/cache"
	"site-search/domain"
	"site-search/logger"
	"site-search/normalize"
	"site-search/port"
	appotel "site-search/utils/otel"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
)

const (
	// MinQueryLength keeps 1-2 character queries from fanning out into
	// broad substring scans.
	MinQueryLength = 3

	// FallbackThreshold is the result count below which the secondary
	// wave and the fallback locale pass are attempted.
	FallbackThreshold = 10

	// MaxResults caps the envelope; Total still reports the
	// pre-truncation count.
	MaxResults = 15
)

const (
	MessageNoResults   = "no results found"
	MessageUnavailable = "search is temporarily unavailable"
)

// collectionQuery binds one collection to its result kind and per-call
// row budget.
type collectionQuery struct {
	collection port.Collection
	kind       domain.SourceKind
	limit      int
}

// primaryWave carries the collections most likely to satisfy a query.
// The secondary wave runs only when the primary yields too few results.
var primaryWave = []collectionQuery{
	{port.CollectionProducts, domain.SourceProduct, 4},
	{port.CollectionGoods, domain.SourceBundleGood, 4},
	{port.CollectionPages, domain.SourcePage, 3},
}

var secondaryWave = []collectionQuery{
	{port.CollectionArticles, domain.SourceArticle, 2},
	{port.CollectionCategories, domain.SourceCategory, 2},
}

type SearchContentUsecase struct {
	store port.ContentStore
	cache *cache.ResultCache
	clog  *logger.ContextLogger
}

func NewSearchContentUsecase(store port.ContentStore, resultCache *cache.ResultCache, log *slog.Logger) *SearchContentUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &SearchContentUsecase{
		store: store,
		cache: resultCache,
		clog:  logger.NewContextLogger(log),
	}
}

// Execute runs one search. Per-collection failures degrade to fewer
// results; only a broken cache-free pipeline state could surface an error,
// so callers treat a non-nil error as unexpected.
func (u *SearchContentUsecase) Execute(ctx context.Context, query string, locale domain.Locale) (domain.SearchResponse, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < MinQueryLength {
		return domain.EmptyResponse(trimmed, fmt.Sprintf("query must be at least %d characters long", MinQueryLength)), nil
	}

	ctx = logger.WithQuery(ctx, trimmed)
	ctx = logger.WithLocale(ctx, string(locale))

	key := cache.Key(trimmed, locale)
	if hit, ok := u.cache.Get(key); ok {
		if appotel.Metrics != nil {
			appotel.Metrics.CacheHitsTotal.Add(ctx, 1)
		}
		u.clog.WithContext(ctx).Info("search served from cache")
		return hit.AsCached(), nil
	}

	ctx = logger.WithSearchID(ctx, uuid.New().String())
	start := time.Now()
	terms := normalize.Variations(trimmed)

	acc := newResultSet()
	var stats searchStats

	u.searchLocale(ctx, terms, locale, acc, &stats)
	if acc.len() < FallbackThreshold {
		u.searchLocale(ctx, terms, locale.Fallback(), acc, &stats)
	}

	results := acc.results()
	rank(results, trimmed, locale)

	total := len(results)
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	message := fmt.Sprintf("found %d results", total)
	if total == 0 {
		message = MessageNoResults
		if stats.attempts > 0 && stats.failures == stats.attempts {
			message = MessageUnavailable
		}
	}

	resp := domain.SearchResponse{
		Results: results,
		Query:   trimmed,
		Total:   total,
		Message: message,
	}
	u.cache.Set(key, resp)

	elapsed := time.Since(start)
	if appotel.Metrics != nil {
		appotel.Metrics.SearchesTotal.Add(ctx, 1)
		appotel.Metrics.SearchDuration.Record(ctx, elapsed.Seconds())
	}
	u.clog.WithContext(ctx).Info("search completed",
		"total", total,
		"failed_collections", stats.failures,
		"duration_ms", elapsed.Milliseconds())

	return resp, nil
}

type searchStats struct {
	attempts int
	failures int
}

// searchLocale runs the two waves against one locale, merging into acc.
// The secondary wave is skipped once enough results have accumulated.
func (u *SearchContentUsecase) searchLocale(ctx context.Context, terms []string, locale domain.Locale, acc *resultSet, stats *searchStats) {
	ctx = logger.WithLocale(ctx, string(locale))
	u.runWave(ctx, primaryWave, terms, locale, acc, stats)
	if acc.len() < FallbackThreshold {
		u.runWave(ctx, secondaryWave, terms, locale, acc, stats)
	}
}

// runWave queries every collection in the wave in parallel. A failing
// collection contributes zero results and is counted, never propagated.
func (u *SearchContentUsecase) runWave(ctx context.Context, wave []collectionQuery, terms []string, locale domain.Locale, acc *resultSet, stats *searchStats) {
	g, gctx := errgroup.WithContext(ctx)
	found := make([][]port.Record, len(wave))
	errs := make([]error, len(wave))

	for i, cq := range wave {
		g.Go(func() error {
			records, err := u.store.Find(gctx, cq.collection, port.FindQuery{
				Terms:  terms,
				Locale: locale,
				Limit:  cq.limit,
			})
			if err != nil {
				cctx := logger.WithCollection(gctx, string(cq.collection))
				u.clog.WithContext(cctx).Warn("collection search failed",
					"error", err.Error())
				if appotel.Metrics != nil {
					appotel.Metrics.CollectionErrors.Add(gctx, 1)
				}
				errs[i] = err
				return nil // non-fatal
			}
			found[i] = records
			return nil
		})
	}
	_ = g.Wait()

	for i, cq := range wave {
		stats.attempts++
		if errs[i] != nil {
			stats.failures++
			continue
		}
		for _, rec := range found[i] {
			acc.add(domain.NewSearchResult(cq.kind, rec.ID, rec.Title, rec.Slug, rec.Description, locale))
		}
	}
}

// rank orders results so titles containing the query come first; ties
// fall back to a locale-aware alphabetical comparison.
func rank(results []domain.SearchResult, query string, locale domain.Locale) {
	lowered := strings.ToLower(query)
	coll := collate.New(locale.Tag(), collate.IgnoreCase)
	sort.SliceStable(results, func(i, j int) bool {
		iHas := strings.Contains(strings.ToLower(results[i].Title), lowered)
		jHas := strings.Contains(strings.ToLower(results[j].Title), lowered)
		if iHas != jHas {
			return iHas
		}
		return coll.CompareString(results[i].Title, results[j].Title) < 0
	})
}

// resultSet merges wave output, keeping the first result seen per id.
type resultSet struct {
	seen  map[string]struct{}
	items []domain.SearchResult
}

func newResultSet() *resultSet {
	return &resultSet{seen: make(map[string]struct{})}
}

func (s *resultSet) add(r domain.SearchResult) {
	if _, ok := s.seen[r.ID]; ok {
		return
	}
	s.seen[r.ID] = struct{}{}
	s.items = append(s.items, r)
}

func (s *resultSet) len() int { return len(s.items) }

func (s *resultSet) results() []domain.SearchResult {
	out := make([]domain.SearchResult, len(s.items))
	copy(out, s.items)
	return out
}
