package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/matchlog"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/platform/refid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"golang.org/x/time/rate"
)

type CrawlConfig struct {
	// PageDelay spaces catalog page fetches. Zero disables pacing.
	PageDelay time.Duration
	// ProfileDelay spaces player profile fetches.
	ProfileDelay time.Duration
}

type CrawlResult struct {
	LeagueKey  string         `json:"leagueKey"`
	League     string         `json:"league"`
	Nation     string         `json:"nation"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Statuses   []crawl.Status `json:"statuses"`
}

// Failed counts statuses with a failed fetch or entry error.
func (r CrawlResult) Failed() int {
	failed := 0
	for _, status := range r.Statuses {
		if !status.Succeeded() {
			failed++
		}
	}
	return failed
}

// CrawlService walks the catalog of one or more leagues: fetch each page,
// parse its tables, snapshot every batch to disk and import it from the
// snapshot. Fetches are sequential; only the parse of one page fans out.
type CrawlService struct {
	catalog   CatalogSource
	fetcher   PageFetcher
	parser    TableParser
	snapshots SnapshotStore
	importer  Importer
	refs      refid.Generator
	cfg       CrawlConfig
	logger    *logging.Logger
}

func NewCrawlService(
	catalog CatalogSource,
	fetcher PageFetcher,
	parser TableParser,
	snapshots SnapshotStore,
	importer Importer,
	refs refid.Generator,
	cfg CrawlConfig,
	logger *logging.Logger,
) *CrawlService {
	if logger == nil {
		logger = logging.Default()
	}
	if refs == nil {
		refs = refid.NewMD5Generator()
	}
	return &CrawlService{
		catalog:   catalog,
		fetcher:   fetcher,
		parser:    parser,
		snapshots: snapshots,
		importer:  importer,
		refs:      refs,
		cfg:       cfg,
		logger:    logger.Named("crawler"),
	}
}

func (s *CrawlService) CrawlLeague(ctx context.Context, leagueKey string) (CrawlResult, error) {
	results, err := s.Crawl(ctx, leagueKey)
	if len(results) == 0 {
		return CrawlResult{LeagueKey: leagueKey, Statuses: []crawl.Status{}}, err
	}
	return results[0], err
}

func (s *CrawlService) CrawlAll(ctx context.Context) ([]CrawlResult, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("%w: crawl catalog is not configured", ErrDependencyUnavailable)
	}
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load catalog: %v", ErrDependencyUnavailable, err)
	}
	return s.Crawl(ctx, cat.Keys()...)
}

// Crawl runs one crawl over the given leagues. The liveness probe runs once
// up front; when it fails nothing is fetched and no statuses are returned.
func (s *CrawlService) Crawl(ctx context.Context, leagueKeys ...string) ([]CrawlResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CrawlService.Crawl", attrLeague.StringSlice(leagueKeys))
	defer span.End()

	if s.catalog == nil || s.fetcher == nil || s.parser == nil || s.snapshots == nil || s.importer == nil {
		return nil, fmt.Errorf("%w: crawler is not fully configured", ErrDependencyUnavailable)
	}
	if len(leagueKeys) == 0 {
		return nil, fmt.Errorf("%w: at least one league is required", ErrInvalidInput)
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load catalog: %v", ErrDependencyUnavailable, err)
	}

	leagues := make([]crawl.LeagueCatalog, 0, len(leagueKeys))
	for _, key := range leagueKeys {
		lc, err := cat.League(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		leagues = append(leagues, lc)
	}

	if err := s.fetcher.IsAlive(ctx); err != nil {
		s.logger.ErrorContext(ctx, "liveness probe failed, aborting crawl", "leagues", leagueKeys, "error", err)
		return nil, fmt.Errorf("%w: source liveness probe failed: %w", ErrDependencyUnavailable, err)
	}

	pages := newPacer(s.cfg.PageDelay)
	results := make([]CrawlResult, 0, len(leagues))
	for i, lc := range leagues {
		result := CrawlResult{
			LeagueKey: leagueKeys[i],
			League:    lc.Name,
			Nation:    lc.Nation,
			StartedAt: time.Now().UTC(),
			Statuses:  make([]crawl.Status, 0, len(lc.Entries)+len(lc.Profiles)),
		}

		for _, entry := range lc.Entries {
			s.pace(ctx, pages)
			result.Statuses = append(result.Statuses, s.crawlEntry(ctx, lc, entry))
		}
		result.Statuses = append(result.Statuses, s.crawlProfiles(ctx, lc)...)
		result.FinishedAt = time.Now().UTC()

		s.logger.InfoContext(ctx, "league crawl finished",
			"league", lc.Name,
			"pages", len(result.Statuses),
			"failed", result.Failed(),
			"duration", result.FinishedAt.Sub(result.StartedAt),
		)
		results = append(results, result)
	}

	return results, nil
}

func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// pace waits for the limiter. A cancelled context skips the wait rather
// than stopping the crawl.
func (s *CrawlService) pace(ctx context.Context, limiter *rate.Limiter) {
	if err := limiter.Wait(ctx); err != nil {
		s.logger.DebugContext(ctx, "pacing wait skipped", "error", err)
	}
}

type parsedPage struct {
	players     []player.Player
	goalkeeping []goalkeeping.Goalkeeping
	shooting    []shooting.Shooting
	matchLogs   []matchlog.MatchLog
}

func (s *CrawlService) crawlEntry(ctx context.Context, lc crawl.LeagueCatalog, entry crawl.Entry) (status crawl.Status) {
	status = crawl.Status{Label: entry.Team, URL: entry.URL, Season: entry.Season}

	defer func() {
		if r := recover(); r != nil {
			value, stack := unwrapPanic(r)
			status.Error = fmt.Sprintf("entry failed: %v", value)
			s.logger.ErrorContext(ctx, "crawl entry panicked", "team", entry.Team, "url", entry.URL, "panic", value, "stack", stack)
		}
	}()

	page, err := s.fetcher.Fetch(ctx, entry.URL)
	status.StatusCode = page.StatusCode
	status.StatusText = page.StatusText
	if err != nil {
		status.Error = err.Error()
		if status.StatusText == "" {
			status.StatusText = fetchClassText(err)
		}
		s.logger.WarnContext(ctx, "fetch page failed", "team", entry.Team, "url", entry.URL, "error", err)
		return status
	}

	parsed, recovered := s.parsePage(page.Body, entry)
	if recovered != nil {
		status.Error = fmt.Sprintf("entry failed: %v", recovered.Value)
		s.logger.ErrorContext(ctx, "parse page panicked",
			"team", entry.Team,
			"url", entry.URL,
			"panic", recovered.Value,
			"stack", string(recovered.Stack),
		)
		return status
	}
	status.Imports = s.importPage(ctx, lc, entry, parsed)
	return status
}

// parsePage runs the four table parsers against the same page text. Each
// task writes only its own field. A parser panic is returned, not re-raised.
func (s *CrawlService) parsePage(body string, entry crawl.Entry) (parsedPage, *panics.Recovered) {
	var out parsedPage
	var wg conc.WaitGroup

	if id := entry.Tables.Players; id != "" {
		wg.Go(func() {
			for item := range s.parser.Players(body, id) {
				item.Season = entry.Season
				item.ReferenceID = s.refs.Generate(item.Name, entry.Team)
				out.players = append(out.players, item)
			}
		})
	}
	if id := entry.Tables.Goalkeeping; id != "" {
		wg.Go(func() {
			for item := range s.parser.Goalkeeping(body, id) {
				item.Season = entry.Season
				out.goalkeeping = append(out.goalkeeping, item)
			}
		})
	}
	if id := entry.Tables.Shooting; id != "" {
		wg.Go(func() {
			for item := range s.parser.Shooting(body, id) {
				item.Season = entry.Season
				out.shooting = append(out.shooting, item)
			}
		})
	}
	if id := entry.Tables.MatchLogs; id != "" {
		wg.Go(func() {
			for item := range s.parser.MatchLogs(body, id) {
				item.Team = entry.Team
				item.Season = entry.Season
				out.matchLogs = append(out.matchLogs, item)
			}
		})
	}

	return out, wg.WaitAndRecover()
}

// unwrapPanic separates a recovered value from the stack conc attaches to
// panics it re-raises.
func unwrapPanic(r any) (any, string) {
	if rec, ok := r.(*panics.Recovered); ok {
		return rec.Value, string(rec.Stack)
	}
	if rec, ok := r.(panics.Recovered); ok {
		return rec.Value, string(rec.Stack)
	}
	return r, ""
}

// importPage imports players before goalkeeping and shooting, which are
// matched against the players of the same club and season.
func (s *CrawlService) importPage(ctx context.Context, lc crawl.LeagueCatalog, entry crawl.Entry, parsed parsedPage) []crawl.ImportOutcome {
	outcomes := make([]crawl.ImportOutcome, 0, 4)
	outcomes = append(outcomes,
		s.snapshotAndImport(ctx, lc, entry.Team, entry.Season, crawl.DataTypePlayers, parsed.players, len(parsed.players)),
		s.snapshotAndImport(ctx, lc, entry.Team, entry.Season, crawl.DataTypeGoalkeeping, parsed.goalkeeping, len(parsed.goalkeeping)),
		s.snapshotAndImport(ctx, lc, entry.Team, entry.Season, crawl.DataTypeShooting, parsed.shooting, len(parsed.shooting)),
	)
	if entry.Tables.MatchLogs != "" {
		outcomes = append(outcomes, s.snapshotOnly(ctx, lc, entry.Team, entry.Season, crawl.DataTypeMatchLogs, parsed.matchLogs, len(parsed.matchLogs)))
	}
	return outcomes
}

func (s *CrawlService) snapshotOnly(ctx context.Context, lc crawl.LeagueCatalog, team, season string, dataType crawl.DataType, records any, count int) crawl.ImportOutcome {
	outcome := crawl.ImportOutcome{DataType: dataType}
	if count == 0 {
		outcome.Message = "no records extracted"
		return outcome
	}

	path, err := s.snapshots.Write(ctx, SnapshotMeta{Club: team, League: lc.Name, Nation: lc.Nation, Season: season, DataType: dataType}, records)
	if err != nil {
		outcome.Message = err.Error()
		s.logger.WarnContext(ctx, "write snapshot failed", "team", team, "data_type", dataType, "error", err)
		return outcome
	}

	outcome.Success = true
	outcome.Snapshot = path
	outcome.Message = fmt.Sprintf("%d records snapshotted", count)
	return outcome
}

// snapshotAndImport writes the batch, reads it back and imports what was
// read, so the file on disk is exactly what reached storage.
func (s *CrawlService) snapshotAndImport(ctx context.Context, lc crawl.LeagueCatalog, team, season string, dataType crawl.DataType, records any, count int) crawl.ImportOutcome {
	outcome := s.snapshotOnly(ctx, lc, team, season, dataType, records, count)
	if !outcome.Success {
		return outcome
	}
	outcome.Success = false

	snap, err := s.snapshots.Read(ctx, outcome.Snapshot)
	if err != nil {
		outcome.Message = err.Error()
		s.logger.WarnContext(ctx, "read snapshot failed", "path", outcome.Snapshot, "error", err)
		return outcome
	}

	result, err := s.importer.Import(ctx, ImportInput{
		Records:  snap.Data,
		DataType: dataType,
		Club:     firstNonEmpty(snap.Club, team),
		League:   firstNonEmpty(snap.League, lc.Name),
		Nation:   firstNonEmpty(snap.Nation, lc.Nation),
		Season:   firstNonEmpty(snap.Season, season),
	})
	outcome.Saved = result.Saved
	if err != nil || !result.Success {
		outcome.Message = ImportFailureMessage(result, err)
		s.logger.WarnContext(ctx, "import batch failed",
			"team", team,
			"season", season,
			"data_type", dataType,
			"message", outcome.Message,
		)
		return outcome
	}

	outcome.Success = true
	outcome.Message = result.Message
	return outcome
}

type profileBatch struct {
	team      string
	details   []player.Details
	statusIdx int
}

// crawlProfiles fetches individually listed player pages at the profile
// pace and imports one details batch per team.
func (s *CrawlService) crawlProfiles(ctx context.Context, lc crawl.LeagueCatalog) []crawl.Status {
	if len(lc.Profiles) == 0 {
		return nil
	}

	pacer := newPacer(s.cfg.ProfileDelay)
	statuses := make([]crawl.Status, 0, len(lc.Profiles))
	batches := make([]*profileBatch, 0)
	byTeam := make(map[string]*profileBatch)

	for _, profile := range lc.Profiles {
		s.pace(ctx, pacer)

		status, details, ok := s.crawlProfile(ctx, profile)
		statuses = append(statuses, status)

		batch, exists := byTeam[profile.Team]
		if !exists {
			batch = &profileBatch{team: profile.Team}
			byTeam[profile.Team] = batch
			batches = append(batches, batch)
		}
		batch.statusIdx = len(statuses) - 1
		if ok {
			batch.details = append(batch.details, details)
		}
	}

	for _, batch := range batches {
		if len(batch.details) == 0 {
			continue
		}
		outcome := s.snapshotAndImport(ctx, lc, batch.team, "", crawl.DataTypePlayerDetails, batch.details, len(batch.details))
		statuses[batch.statusIdx].Imports = append(statuses[batch.statusIdx].Imports, outcome)
	}

	return statuses
}

func (s *CrawlService) crawlProfile(ctx context.Context, profile crawl.Profile) (status crawl.Status, details player.Details, ok bool) {
	status = crawl.Status{Label: profile.Team, URL: profile.URL}

	defer func() {
		if r := recover(); r != nil {
			status.Error = fmt.Sprintf("profile failed: %v", r)
			details, ok = player.Details{}, false
			s.logger.ErrorContext(ctx, "profile crawl panicked", "url", profile.URL, "panic", r)
		}
	}()

	page, err := s.fetcher.Fetch(ctx, profile.URL)
	status.StatusCode = page.StatusCode
	status.StatusText = page.StatusText
	if err != nil {
		status.Error = err.Error()
		if status.StatusText == "" {
			status.StatusText = fetchClassText(err)
		}
		s.logger.WarnContext(ctx, "fetch profile failed", "url", profile.URL, "error", err)
		return status, player.Details{}, false
	}

	details, ok = s.parser.Details(page.Body)
	if !ok {
		status.Error = "player profile not recognised"
		return status, player.Details{}, false
	}
	details.ReferenceID = s.refs.Generate(details.Name, profile.Team)
	status.Label = strings.TrimSpace(profile.Team + " / " + details.Name)
	return status, details, true
}

func fetchClassText(err error) string {
	if class := FetchErrorClass(err); class != nil {
		return class.Error()
	}
	return "fetch failed"
}

func firstNonEmpty(values ...string) string {
	idx := slices.IndexFunc(values, func(v string) bool { return strings.TrimSpace(v) != "" })
	if idx < 0 {
		return ""
	}
	return values[idx]
}
