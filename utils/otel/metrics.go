package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for site-search.
var Metrics *SiteSearchMetrics

// SiteSearchMetrics contains all metric instruments.
type SiteSearchMetrics struct {
	SearchesTotal    metric.Int64Counter
	CacheHitsTotal   metric.Int64Counter
	CollectionErrors metric.Int64Counter
	SearchDuration   metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("site-search")

	searchesTotal, err := meter.Int64Counter("site_search_searches_total",
		metric.WithDescription("Total number of searches executed against the store"),
	)
	if err != nil {
		return err
	}

	cacheHitsTotal, err := meter.Int64Counter("site_search_cache_hits_total",
		metric.WithDescription("Total number of searches served from the result cache"),
	)
	if err != nil {
		return err
	}

	collectionErrors, err := meter.Int64Counter("site_search_collection_errors_total",
		metric.WithDescription("Total number of per-collection search failures"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("site_search_duration_seconds",
		metric.WithDescription("Search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &SiteSearchMetrics{
		SearchesTotal:    searchesTotal,
		CacheHitsTotal:   cacheHitsTotal,
		CollectionErrors: collectionErrors,
		SearchDuration:   searchDuration,
	}

	return nil
}
