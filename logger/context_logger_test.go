package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestContextLogger_WithContext_BusinessKeys(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(handler)
	cl := NewContextLogger(logger)

	ctx := context.Background()
	ctx = WithSearchID(ctx, "search-123")
	ctx = WithQuery(ctx, "pizza")
	ctx = WithLocale(ctx, "sr")
	ctx = WithCollection(ctx, "products")

	cl.WithContext(ctx).Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"search.id", "search-123"},
		{"search.query", "pizza"},
		{"search.locale", "sr"},
		{"search.collection", "products"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := logEntry[tt.key]
			if !ok {
				t.Errorf("expected key %q to be present in log", tt.key)
				return
			}
			if got != tt.expected {
				t.Errorf("expected %q to be %q, got %q", tt.key, tt.expected, got)
			}
		})
	}
}

func TestContextLogger_WithContext_PartialKeys(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(handler)
	cl := NewContextLogger(logger)

	ctx := context.Background()
	ctx = WithSearchID(ctx, "search-only")

	cl.WithContext(ctx).Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	if got, ok := logEntry["search.id"]; !ok || got != "search-only" {
		t.Errorf("expected search.id to be 'search-only', got %v", got)
	}

	// Other keys should not be present
	for _, key := range []string{"search.query", "search.locale", "search.collection"} {
		if _, ok := logEntry[key]; ok {
			t.Errorf("expected key %q to not be present in log", key)
		}
	}
}

func TestContextLogger_LogDuration(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(handler)
	cl := NewContextLogger(logger)

	ctx := context.Background()
	ctx = WithSearchID(ctx, "search-timing")

	cl.LogDuration(ctx, "fan_out", 1500)

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	if got := logEntry["operation"]; got != "fan_out" {
		t.Errorf("expected operation to be 'fan_out', got %v", got)
	}
	if got := logEntry["duration_ms"]; got != float64(1500) {
		t.Errorf("expected duration_ms to be 1500, got %v", got)
	}
	if got := logEntry["search.id"]; got != "search-timing" {
		t.Errorf("expected search.id to be 'search-timing', got %v", got)
	}
}

func TestContextLogger_LogError(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(handler)
	cl := NewContextLogger(logger)

	ctx := context.Background()
	ctx = WithCollection(ctx, "goods")

	testErr := &testError{msg: "test error"}
	cl.LogError(ctx, "collection_search_failed", testErr)

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	if got := logEntry["operation"]; got != "collection_search_failed" {
		t.Errorf("expected operation to be 'collection_search_failed', got %v", got)
	}
	if got := logEntry["search.collection"]; got != "goods" {
		t.Errorf("expected search.collection to be 'goods', got %v", got)
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestWithSearchID(t *testing.T) {
	ctx := context.Background()
	ctx = WithSearchID(ctx, "test-search")

	got := ctx.Value(SearchIDKey)
	if got != "test-search" {
		t.Errorf("expected 'test-search', got %v", got)
	}
}

func TestWithQuery(t *testing.T) {
	ctx := context.Background()
	ctx = WithQuery(ctx, "test-query")

	got := ctx.Value(QueryKey)
	if got != "test-query" {
		t.Errorf("expected 'test-query', got %v", got)
	}
}

func TestWithLocale(t *testing.T) {
	ctx := context.Background()
	ctx = WithLocale(ctx, "en")

	got := ctx.Value(LocaleKey)
	if got != "en" {
		t.Errorf("expected 'en', got %v", got)
	}
}

func TestWithCollection(t *testing.T) {
	ctx := context.Background()
	ctx = WithCollection(ctx, "pages")

	got := ctx.Value(CollectionKey)
	if got != "pages" {
		t.Errorf("expected 'pages', got %v", got)
	}
}
