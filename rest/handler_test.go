package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"site-search/cache"
	"site-search/domain"
	"site-search/port"
	"site-search/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	mu      sync.Mutex
	records []port.Record
	err     error
	calls   int
}

func (s *stubStore) Find(ctx context.Context, collection port.Collection, q port.FindQuery) ([]port.Record, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if collection == port.CollectionProducts {
		return s.records, nil
	}
	return nil, nil
}

func (s *stubStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestHandler(store port.ContentStore) *Handler {
	return newTestHandlerWithDefault(store, domain.DefaultLocale)
}

func newTestHandlerWithDefault(store port.ContentStore, defaultLocale domain.Locale) *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	u := usecase.NewSearchContentUsecase(store, cache.NewResultCache(time.Minute, 100), log)
	return NewHandler(u, defaultLocale, log)
}

func doSearch(t *testing.T, h *Handler, target string) (*httptest.ResponseRecorder, domain.SearchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestSearchReturnsResults(t *testing.T) {
	store := &stubStore{records: []port.Record{
		{ID: "1", Title: "Pizza Margherita", Slug: "margherita", Description: "Classic"},
	}}
	h := newTestHandler(store)

	rec, resp := doSearch(t, h, "/v1/search?q=pizza&locale=sr")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "pizza", resp.Query)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "product-1", resp.Results[0].ID)
	assert.Equal(t, "/sr/products/margherita", resp.Results[0].URL)
}

func TestSearchAliasQueryFindsProduct(t *testing.T) {
	store := &stubStore{records: []port.Record{
		{ID: "7", Title: "Fresh Parsley", Slug: "fresh-parsley"},
	}}
	h := newTestHandler(store)

	rec, resp := doSearch(t, h, "/v1/search?q=parsley&locale=en")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, domain.SourceProduct, resp.Results[0].SourceKind)
	assert.Equal(t, "/en/products/fresh-parsley", resp.Results[0].URL)
}

func TestSearchShortQuery(t *testing.T) {
	for _, target := range []string{
		"/v1/search",
		"/v1/search?q=",
		"/v1/search?q=ab",
	} {
		t.Run(target, func(t *testing.T) {
			store := &stubStore{}
			h := newTestHandler(store)

			rec, resp := doSearch(t, h, target)

			assert.Equal(t, http.StatusOK, rec.Code, "input errors still get a success envelope")
			assert.Empty(t, resp.Results)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, 0, store.callCount(), "short query must not reach the store")
		})
	}
}

func TestSearchStoreOutageStillSucceeds(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	h := newTestHandler(store)

	rec, resp := doSearch(t, h, "/v1/search?q=pizza")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Results)
	assert.Equal(t, usecase.MessageUnavailable, resp.Message)
}

func TestSearchDefaultsLocale(t *testing.T) {
	store := &stubStore{records: []port.Record{
		{ID: "1", Title: "Pizza", Slug: "pizza"},
	}}
	h := newTestHandler(store)

	_, resp := doSearch(t, h, "/v1/search?q=pizza&locale=de")

	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "/sr/products/pizza", resp.Results[0].URL)
}

func TestSearchConfiguredDefaultLocale(t *testing.T) {
	store := &stubStore{records: []port.Record{
		{ID: "1", Title: "Pizza", Slug: "pizza"},
	}}
	h := newTestHandlerWithDefault(store, domain.LocaleEnglish)

	_, resp := doSearch(t, h, "/v1/search?q=pizza")

	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "/en/products/pizza", resp.Results[0].URL)
}

func TestSearchSanitizesQuery(t *testing.T) {
	store := &stubStore{records: []port.Record{
		{ID: "1", Title: "Pizza", Slug: "pizza"},
	}}
	h := newTestHandler(store)

	rec, resp := doSearch(t, h, "/v1/search?q="+"%3Cb%3Epizza%3C%2Fb%3E")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pizza", resp.Query, "markup must be stripped before searching")
}

func TestSearchPanicYieldsErrorEnvelope(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	// A handler with a nil usecase panics on first use; the recover path
	// must still produce a structured envelope.
	h := NewHandler(nil, domain.DefaultLocale, log)

	req := httptest.NewRequest(http.MethodGet, "/v1/search?q=pizza", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal_error", resp.Error)
	assert.Empty(t, resp.Results)
}
