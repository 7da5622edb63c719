package httpapi

import (
	"net/http"
	"strings"
)

// TriggerCrawl runs a full league crawl inside the request. Crawls take
// minutes, so the server write timeout has to cover them.
func (h *Handler) TriggerCrawl(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerCrawl")
	defer span.End()

	leagueKey := strings.TrimSpace(r.PathValue("leagueKey"))
	h.logger.InfoContext(ctx, "crawl triggered", "league", leagueKey, "client_ip", clientIPFromContext(ctx))

	result, err := h.crawler.CrawlLeague(ctx, leagueKey)
	if err != nil {
		h.logger.WarnContext(ctx, "crawl failed", "league", leagueKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, crawlResultToDTO(result))
}
