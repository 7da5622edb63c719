package httpapi

import (
	"net/http"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListCatalogLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCatalogLeagues")
	defer span.End()

	catalog, err := h.catalog.Catalog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load catalog failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]catalogLeagueDTO, 0, len(catalog.Leagues))
	for _, key := range catalog.Keys() {
		items = append(items, catalogLeagueToDTO(key, catalog.Leagues[key]))
	}

	writeSuccess(ctx, w, http.StatusOK, catalogDTO{
		Version: catalog.Version,
		Leagues: items,
	})
}
