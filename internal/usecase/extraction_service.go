package usecase

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fbref-crawler/internal/platform/cache"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
)

// ExtractionKind names the table family an ad-hoc extraction parses.
type ExtractionKind string

const (
	ExtractPlayers     ExtractionKind = "players"
	ExtractGoalkeeping ExtractionKind = "goalkeeping"
	ExtractShooting    ExtractionKind = "shooting"
	ExtractMatchLogs   ExtractionKind = "matchlogs"
	ExtractSquads      ExtractionKind = "squads"
	ExtractDetails     ExtractionKind = "details"
)

var extractionKinds = []ExtractionKind{
	ExtractPlayers,
	ExtractGoalkeeping,
	ExtractShooting,
	ExtractMatchLogs,
	ExtractSquads,
	ExtractDetails,
}

func ExtractionKinds() []ExtractionKind {
	return slices.Clone(extractionKinds)
}

func ParseExtractionKind(v string) (ExtractionKind, error) {
	kind := ExtractionKind(strings.ToLower(strings.TrimSpace(v)))
	if !slices.Contains(extractionKinds, kind) {
		return "", fmt.Errorf("%w: unknown extraction kind %q", ErrInvalidInput, v)
	}
	return kind, nil
}

type ExtractionRequest struct {
	URL string `json:"url" validate:"required,url"`
	// Selector is a table id or CSS selector. Profiles ignore it.
	Selector string `json:"selector"`
}

type ExtractionResult struct {
	Kind       ExtractionKind `json:"kind"`
	URL        string         `json:"url"`
	Selector   string         `json:"selector,omitempty"`
	StatusCode int            `json:"statusCode"`
	Count      int            `json:"count"`
	Records    any            `json:"records"`
}

// ExtractionService fetches one page and parses a single table kind from it.
// Pages are cached by URL so repeated selectors on one page fetch once.
type ExtractionService struct {
	fetcher  PageFetcher
	parser   TableParser
	pages    *cache.Store[FetchedPage]
	validate *validator.Validate
	logger   *logging.Logger
}

func NewExtractionService(fetcher PageFetcher, parser TableParser, cacheTTL time.Duration, logger *logging.Logger) *ExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ExtractionService{
		fetcher:  fetcher,
		parser:   parser,
		pages:    cache.NewStore[FetchedPage](cacheTTL),
		validate: validator.New(),
		logger:   logger.Named("extractor"),
	}
}

func (s *ExtractionService) Extract(ctx context.Context, kind ExtractionKind, req ExtractionRequest) (ExtractionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExtractionService.Extract", attrKind.String(string(kind)))
	defer span.End()

	if s.fetcher == nil || s.parser == nil {
		return ExtractionResult{}, fmt.Errorf("%w: extractor is not configured", ErrDependencyUnavailable)
	}
	if !slices.Contains(extractionKinds, kind) {
		return ExtractionResult{}, fmt.Errorf("%w: unknown extraction kind %q", ErrInvalidInput, kind)
	}

	req.URL = strings.TrimSpace(req.URL)
	req.Selector = strings.TrimSpace(req.Selector)
	if err := s.validate.Struct(req); err != nil {
		return ExtractionResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if kind != ExtractDetails && req.Selector == "" {
		return ExtractionResult{}, fmt.Errorf("%w: selector is required for %s", ErrInvalidInput, kind)
	}

	page, err := s.pages.GetOrLoad(ctx, req.URL, func(ctx context.Context) (FetchedPage, error) {
		return s.fetcher.Fetch(ctx, req.URL)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "extraction fetch failed", "url", req.URL, "error", err)
		return ExtractionResult{Kind: kind, URL: req.URL, Selector: req.Selector, StatusCode: page.StatusCode}, fmt.Errorf("fetch %s: %w", req.URL, err)
	}

	result := ExtractionResult{
		Kind:       kind,
		URL:        req.URL,
		Selector:   req.Selector,
		StatusCode: page.StatusCode,
	}

	switch kind {
	case ExtractPlayers:
		result.Records, result.Count = collect(s.parser.Players(page.Body, req.Selector))
	case ExtractGoalkeeping:
		result.Records, result.Count = collect(s.parser.Goalkeeping(page.Body, req.Selector))
	case ExtractShooting:
		result.Records, result.Count = collect(s.parser.Shooting(page.Body, req.Selector))
	case ExtractMatchLogs:
		result.Records, result.Count = collect(s.parser.MatchLogs(page.Body, req.Selector))
	case ExtractSquads:
		result.Records, result.Count = collect(s.parser.Squads(page.Body, req.Selector))
	case ExtractDetails:
		details, ok := s.parser.Details(page.Body)
		if !ok {
			return result, fmt.Errorf("%w: no player profile on %s", ErrNotFound, req.URL)
		}
		result.Records, result.Count = details, 1
	}

	s.logger.InfoContext(ctx, "extraction finished", "kind", kind, "url", req.URL, "count", result.Count)
	return result, nil
}

func collect[T any](seq iter.Seq[T]) ([]T, int) {
	items := make([]T, 0)
	for item := range seq {
		items = append(items, item)
	}
	return items, len(items)
}
