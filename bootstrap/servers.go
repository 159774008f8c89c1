package bootstrap

import (
	"io"
	"net/http"

	"site-search/config"
	"site-search/logger"
	"site-search/middleware"
	"site-search/rest"
	"site-search/usecase"
	appOtel "site-search/utils/otel"
)

// newHTTPServer creates the REST HTTP server.
func newHTTPServer(searchUsecase *usecase.SearchContentUsecase, appCfg *config.Config, otelCfg appOtel.Config) *http.Server {
	restHandler := rest.NewHandler(searchUsecase, appCfg.Search.DefaultLocale, logger.Logger)

	mux := http.NewServeMux()

	healthHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})

	if otelCfg.Enabled {
		mux.Handle("/v1/search", middleware.OTelStatusHandlerFunc(restHandler.Search, "GET /v1/search"))
		mux.Handle("/health", middleware.OTelStatusHandlerFunc(healthHandler, "GET /health"))
	} else {
		mux.HandleFunc("/v1/search", restHandler.Search)
		mux.Handle("/health", healthHandler)
	}

	return &http.Server{
		Addr:              appCfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: appCfg.HTTP.ReadHeaderTimeout,
	}
}
