package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"site-search/domain"
	"site-search/usecase"
	"site-search/utils"
)

// Handler serves the public search endpoint.
type Handler struct {
	searchUsecase *usecase.SearchContentUsecase
	sanitizer     *utils.QuerySanitizer
	defaultLocale domain.Locale
	logger        *slog.Logger
}

func NewHandler(searchUsecase *usecase.SearchContentUsecase, defaultLocale domain.Locale, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		searchUsecase: searchUsecase,
		sanitizer:     utils.NewQuerySanitizer(utils.DefaultMaxQueryLength),
		defaultLocale: defaultLocale,
		logger:        log,
	}
}

// Search handles GET /v1/search?q=&locale=. A well-formed envelope is
// always returned; bad input degrades to an empty 200 envelope and only
// an unexpected pipeline failure produces the 500 error envelope.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("search handler panic", "panic", fmt.Sprint(rec))
			h.writeError(w)
		}
	}()

	query := h.sanitizer.Sanitize(r.URL.Query().Get("q"))
	locale := domain.ParseLocaleOr(r.URL.Query().Get("locale"), h.defaultLocale)

	if utf8.RuneCountInString(query) < usecase.MinQueryLength {
		resp := domain.EmptyResponse(query,
			fmt.Sprintf("query must be at least %d characters long", usecase.MinQueryLength))
		h.writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := h.searchUsecase.Execute(r.Context(), query, locale)
	if err != nil {
		h.logger.Error("search failed", "query", query, "locale", locale, "err", err)
		h.writeError(w)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
		Error:   "internal_error",
		Message: "search is temporarily unavailable",
		Results: []domain.SearchResult{},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode failed", "err", err)
	}
}
