package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/catalog/leagues", handler.ListCatalogLeagues)
	mux.HandleFunc("POST /v1/extract/{kind}", handler.Extract)
}

// Internal routes write to storage or hit the stats source for a whole league,
// so they sit behind the internal job token.
func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/crawls/{leagueKey}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.TriggerCrawl)))
	mux.Handle("POST /v1/internal/imports", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ImportBatch)))
}
