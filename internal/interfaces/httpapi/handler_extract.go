package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Extract")
	defer span.End()

	kind, err := usecase.ParseExtractionKind(r.PathValue("kind"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req extractRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.extractor.Extract(ctx, kind, usecase.ExtractionRequest{
		URL:      req.URL,
		Selector: req.Selector,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "extract failed", "kind", kind, "url", req.URL, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
