package usecase

import (
	"context"
	"iter"
	"time"

	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
	"github.com/riskibarqy/fbref-crawler/internal/domain/matchlog"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
)

// FetchedPage is a page answer. StatusCode and StatusText are set whenever
// the server answered, including alongside a status error.
type FetchedPage struct {
	URL        string
	StatusCode int
	StatusText string
	Body       string
}

// PageFetcher fetches pages from the stats source without retrying.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (FetchedPage, error)
	IsAlive(ctx context.Context) error
}

// TableParser turns page text into typed records. Every method is pure and
// safe for concurrent use on the same input.
type TableParser interface {
	Players(html, location string) iter.Seq[player.Player]
	Goalkeeping(html, location string) iter.Seq[goalkeeping.Goalkeeping]
	Shooting(html, location string) iter.Seq[shooting.Shooting]
	MatchLogs(html, location string) iter.Seq[matchlog.MatchLog]
	Squads(html, location string) iter.Seq[club.SquadStats]
	Details(html string) (player.Details, bool)
}

// Snapshot is the envelope written next to every extracted batch.
type Snapshot struct {
	Club        string           `json:"club"`
	League      string           `json:"league"`
	Nation      string           `json:"nation"`
	Season      string           `json:"season,omitempty"`
	DataType    string           `json:"dataType"`
	ExportDate  time.Time        `json:"exportDate"`
	RecordCount int              `json:"recordCount"`
	Data        []map[string]any `json:"data"`
}

type SnapshotMeta struct {
	Club     string
	League   string
	Nation   string
	Season   string
	DataType crawl.DataType
}

// SnapshotStore persists extracted batches as JSON documents and reads them
// back for import.
type SnapshotStore interface {
	Write(ctx context.Context, meta SnapshotMeta, records any) (string, error)
	Read(ctx context.Context, path string) (Snapshot, error)
	List(ctx context.Context, dir string) ([]string, error)
}

// ImportStore opens the single transaction an import call runs in.
type ImportStore interface {
	BeginImport(ctx context.Context) (ImportUnit, error)
}

// ImportUnit exposes the repositories bound to one open transaction.
// Commit and Rollback end it; calling Rollback after Commit is a no-op.
type ImportUnit interface {
	Leagues() league.Repository
	Clubs() club.Repository
	Players() player.Repository
	PlayerDetails() player.DetailsRepository
	Goalkeeping() goalkeeping.Repository
	Shooting() shooting.Repository
	Commit() error
	Rollback() error
}

// CatalogSource supplies the crawl catalog.
type CatalogSource interface {
	Catalog(ctx context.Context) (crawl.Catalog, error)
}

// Importer is the import entry point the crawler and re-importer depend on.
type Importer interface {
	Import(ctx context.Context, input ImportInput) (ImportResult, error)
}
