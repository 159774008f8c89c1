package domain

// SearchResponse is the envelope returned for every search call. It is
// immutable once constructed; the result cache stores envelopes and hands
// out copies, never mutating a stored value in place.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Message string         `json:"message"`
	Cached  bool           `json:"cached"`
}

// AsCached returns a copy of the envelope annotated as served from cache.
func (r SearchResponse) AsCached() SearchResponse {
	r.Cached = true
	return r
}

// EmptyResponse builds a zero-result envelope with an explanatory message.
func EmptyResponse(query, message string) SearchResponse {
	return SearchResponse{Results: []SearchResult{}, Query: query, Message: message}
}

// ErrorResponse is the envelope returned when the search pipeline fails
// unexpectedly. Partial collection failures never produce it; they degrade
// to an ordinary envelope with fewer results.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}
