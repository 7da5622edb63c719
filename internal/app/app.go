package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fbref-crawler/external/fbref"
	"github.com/riskibarqy/fbref-crawler/internal/config"
	"github.com/riskibarqy/fbref-crawler/internal/infrastructure/catalog"
	"github.com/riskibarqy/fbref-crawler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fbref-crawler/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fbref-crawler/internal/infrastructure/snapshot"
	"github.com/riskibarqy/fbref-crawler/internal/interfaces/httpapi"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/platform/refid"
	"github.com/riskibarqy/fbref-crawler/internal/platform/resilience"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// Components is the wired pipeline shared by the API server and the crawler CLI.
type Components struct {
	Catalog    *catalog.Loader
	Fetcher    *fbref.Client
	Parser     *fbref.Parser
	Snapshots  *snapshot.FileStore
	Importer   *usecase.ImportService
	Crawler    *usecase.CrawlService
	Extractor  *usecase.ExtractionService
	Reimporter *usecase.ReimportService

	db *sqlx.DB
}

func Build(cfg config.Config, logger *logging.Logger) (*Components, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, db, err := newImportStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	refs := refid.NewMD5Generator()
	catalogLoader := catalog.NewLoader(cfg.CatalogPath, logger)
	snapshots := snapshot.NewFileStore(cfg.SnapshotBasePath, logger)
	parser := fbref.NewParser(logger)
	fetcher := fbref.NewClient(fbref.ClientConfig{
		BaseURL:   cfg.FetchBaseURL,
		UserAgent: cfg.FetchUserAgent,
		Timeout:   cfg.FetchTimeout,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FetchCircuitEnabled,
			FailureThreshold: 1,
			OpenTimeout:      cfg.FetchCircuitOpenTimeout,
			HalfOpenMaxReq:   1,
		},
	})

	importer := usecase.NewImportService(store, usecase.ImportConfig{
		DefaultLeagueName: cfg.DefaultLeagueName,
		SystemLeagues:     cfg.SystemLeagues,
	}, refs, logger)

	return &Components{
		Catalog:   catalogLoader,
		Fetcher:   fetcher,
		Parser:    parser,
		Snapshots: snapshots,
		Importer:  importer,
		Crawler: usecase.NewCrawlService(catalogLoader, fetcher, parser, snapshots, importer, refs, usecase.CrawlConfig{
			PageDelay:    cfg.CrawlPageDelay,
			ProfileDelay: cfg.CrawlProfileDelay,
		}, logger),
		Extractor:  usecase.NewExtractionService(fetcher, parser, cfg.ExtractCacheTTL, logger),
		Reimporter: usecase.NewReimportService(snapshots, importer, cfg.ReimportWorkers, logger),
		db:         db,
	}, nil
}

// Close releases the database pool when one was opened.
func (c *Components) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func newImportStore(cfg config.Config, logger *logging.Logger) (usecase.ImportStore, *sqlx.DB, error) {
	if !cfg.UseDatabase() {
		logger.Warn("DB_URL not set, importing into the in-memory store")
		return memory.NewStore(cfg.DefaultLeagueName), nil, nil
	}

	db, err := otelsqlx.Open("postgres", DatabaseURL(cfg),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)

	return postgres.NewStore(db), db, nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, *Components, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	components, err := Build(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(components.Catalog, components.Crawler, components.Extractor, components.Importer, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, components, nil
}
