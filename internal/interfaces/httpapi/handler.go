package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

// LeagueCrawler runs the crawl of one catalog league.
type LeagueCrawler interface {
	CrawlLeague(ctx context.Context, leagueKey string) (usecase.CrawlResult, error)
}

// Extractor parses a single table kind out of one page.
type Extractor interface {
	Extract(ctx context.Context, kind usecase.ExtractionKind, req usecase.ExtractionRequest) (usecase.ExtractionResult, error)
}

type Handler struct {
	catalog   usecase.CatalogSource
	crawler   LeagueCrawler
	extractor Extractor
	importer  usecase.Importer
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	catalog usecase.CatalogSource,
	crawler LeagueCrawler,
	extractor Extractor,
	importer usecase.Importer,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalog:   catalog,
		crawler:   crawler,
		extractor: extractor,
		importer:  importer,
		logger:    logger.Named("httpapi"),
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into out and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, out)
}
