package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

// ImportBatch reconciles one posted batch exactly like a snapshot import.
func (h *Handler) ImportBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportBatch")
	defer span.End()

	var req importBatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	dataType, _ := crawl.ParseDataType(req.DataType)
	result, err := h.importer.Import(ctx, usecase.ImportInput{
		Records:  req.Records,
		DataType: dataType,
		Club:     strings.TrimSpace(req.Club),
		League:   strings.TrimSpace(req.League),
		Nation:   strings.TrimSpace(req.Nation),
		Season:   strings.TrimSpace(req.Season),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import batch failed",
			"data_type", dataType,
			"club", req.Club,
			"records", len(req.Records),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
