package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/matchlog"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	"github.com/riskibarqy/fbref-crawler/internal/infrastructure/snapshot"
	usecasemock "github.com/riskibarqy/fbref-crawler/internal/mocks/usecase"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/platform/refid"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	arsenalURL = "https://fbref.com/en/squads/18bb7c10/2023-2024/Arsenal-Stats"
	wolvesURL  = "https://fbref.com/en/squads/8cec06e1/2023-2024/Wolverhampton-Wanderers-Stats"
	sakaURL    = "https://fbref.com/en/players/bc7dc64d/Bukayo-Saka"
)

// stubParser returns the same records for any page.
type stubParser struct {
	players   []player.Player
	keepers   []goalkeeping.Goalkeeping
	shots     []shooting.Shooting
	logs      []matchlog.MatchLog
	details   player.Details
	detailsOK bool
}

func (p stubParser) Players(string, string) iter.Seq[player.Player] {
	return slices.Values(p.players)
}

func (p stubParser) Goalkeeping(string, string) iter.Seq[goalkeeping.Goalkeeping] {
	return slices.Values(p.keepers)
}

func (p stubParser) Shooting(string, string) iter.Seq[shooting.Shooting] {
	return slices.Values(p.shots)
}

func (p stubParser) MatchLogs(string, string) iter.Seq[matchlog.MatchLog] {
	return slices.Values(p.logs)
}

func (p stubParser) Squads(string, string) iter.Seq[club.SquadStats] {
	return slices.Values([]club.SquadStats(nil))
}

func (p stubParser) Details(string) (player.Details, bool) {
	return p.details, p.detailsOK
}

func arsenalParser() stubParser {
	return stubParser{
		players: []player.Player{
			{Name: "Bukayo Saka", Nation: "ENG", Position: "FW", Age: 22, Stats: player.Stats{Goals: 16}},
			{Name: "David Raya", Nation: "ESP", Position: "GK", Age: 28},
		},
		keepers: []goalkeeping.Goalkeeping{
			{PlayerName: "David Raya", Saves: 66, CleanSheets: 16},
		},
		shots: []shooting.Shooting{
			{PlayerName: "Bukayo Saka", Shots: 91, ShotsOnTarget: 34},
		},
		logs: []matchlog.MatchLog{
			{Date: "2023-08-12", Opponent: "Nott'ham Forest", Result: "W", GoalsFor: 2, GoalsAgainst: 1},
		},
		details:   player.Details{Name: "Bukayo Saka", FullName: "Bukayo Ayoyinka Temidayo Saka", Position: "FW-MF (AM-WM, right)"},
		detailsOK: true,
	}
}

func premierLeagueCatalog(entries []crawl.Entry, profiles []crawl.Profile) crawl.Catalog {
	tables := crawl.TableIDs{
		Players:     "stats_standard_9",
		Goalkeeping: "stats_keeper_9",
		Shooting:    "stats_shooting_9",
		MatchLogs:   "matchlogs_for",
	}
	for i := range entries {
		entries[i].Tables = tables
	}
	return crawl.Catalog{
		Version: "1",
		Leagues: map[string]crawl.LeagueCatalog{
			"premier-league": {
				Name:     "Premier League",
				Nation:   "England",
				Tables:   tables,
				Entries:  entries,
				Profiles: profiles,
			},
		},
	}
}

func okPage(url string) usecase.FetchedPage {
	return usecase.FetchedPage{URL: url, StatusCode: 200, StatusText: "OK", Body: "<html></html>"}
}

func TestCrawlService_ProbeFailureAbortsRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalog := usecasemock.NewCatalogSource(t)
	fetcher := usecasemock.NewPageFetcher(t)
	importer := usecasemock.NewImporter(t)

	catalog.
		On("Catalog", mock.Anything).
		Return(premierLeagueCatalog([]crawl.Entry{{Team: "Arsenal", Season: season, URL: arsenalURL}}, nil), nil).
		Once()
	fetcher.
		On("IsAlive", mock.Anything).
		Return(fmt.Errorf("fetch https://fbref.com/en/: %w", usecase.ErrFetchRateLimited)).
		Once()

	service := usecase.NewCrawlService(catalog, fetcher, arsenalParser(), snapshot.NewFileStore(t.TempDir(), logging.NewNop()), importer, refid.NewMD5Generator(), usecase.CrawlConfig{}, logging.NewNop())

	results, err := service.Crawl(ctx, "premier-league")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if !errors.Is(err, usecase.ErrFetchRateLimited) {
		t.Fatalf("expected the probe error to be wrapped, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected zero statuses, got %d results", len(results))
	}
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestCrawlService_UnknownLeagueSkipsProbe(t *testing.T) {
	t.Parallel()

	catalog := usecasemock.NewCatalogSource(t)
	fetcher := usecasemock.NewPageFetcher(t)
	importer := usecasemock.NewImporter(t)

	catalog.
		On("Catalog", mock.Anything).
		Return(premierLeagueCatalog(nil, nil), nil).
		Once()

	service := usecase.NewCrawlService(catalog, fetcher, arsenalParser(), snapshot.NewFileStore(t.TempDir(), logging.NewNop()), importer, nil, usecase.CrawlConfig{}, logging.NewNop())

	_, err := service.CrawlLeague(context.Background(), "serie-a")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	fetcher.AssertNotCalled(t, "IsAlive", mock.Anything)
}

func TestCrawlService_CrawlsImportsAndSnapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	importer, store := newImporter(t)
	snapshots := snapshot.NewFileStore(t.TempDir(), logging.NewNop())
	catalog := usecasemock.NewCatalogSource(t)
	fetcher := usecasemock.NewPageFetcher(t)

	catalog.
		On("Catalog", mock.Anything).
		Return(premierLeagueCatalog(
			[]crawl.Entry{
				{Team: "Arsenal", Season: season, URL: arsenalURL},
				{Team: "Wolves", Season: season, URL: wolvesURL},
			},
			[]crawl.Profile{{Team: "Arsenal", URL: sakaURL}},
		), nil).
		Once()
	fetcher.On("IsAlive", mock.Anything).Return(nil).Once()
	fetcher.On("Fetch", mock.Anything, arsenalURL).Return(okPage(arsenalURL), nil).Once()
	fetcher.
		On("Fetch", mock.Anything, wolvesURL).
		Return(usecase.FetchedPage{URL: wolvesURL, StatusCode: 403, StatusText: "Forbidden"}, fmt.Errorf("fetch %s: %w", wolvesURL, usecase.ErrFetchForbidden)).
		Once()
	fetcher.On("Fetch", mock.Anything, sakaURL).Return(okPage(sakaURL), nil).Once()

	service := usecase.NewCrawlService(catalog, fetcher, arsenalParser(), snapshots, importer, refid.NewMD5Generator(), usecase.CrawlConfig{}, logging.NewNop())

	result, err := service.CrawlLeague(ctx, "premier-league")
	require.NoError(t, err)
	require.Len(t, result.Statuses, 3)
	assert.Equal(t, "Premier League", result.League)
	assert.Equal(t, 1, result.Failed())

	arsenal := result.Statuses[0]
	assert.Equal(t, 200, arsenal.StatusCode)
	assert.Empty(t, arsenal.Error)
	require.Len(t, arsenal.Imports, 4)
	wantTypes := []crawl.DataType{crawl.DataTypePlayers, crawl.DataTypeGoalkeeping, crawl.DataTypeShooting, crawl.DataTypeMatchLogs}
	for i, outcome := range arsenal.Imports {
		assert.Equal(t, wantTypes[i], outcome.DataType)
		assert.Truef(t, outcome.Success, "%s import failed: %s", outcome.DataType, outcome.Message)
		assert.NotEmpty(t, outcome.Snapshot)
	}

	wolves := result.Statuses[1]
	assert.Equal(t, 403, wolves.StatusCode)
	assert.Equal(t, "Forbidden", wolves.StatusText)
	assert.NotEmpty(t, wolves.Error)
	assert.Empty(t, wolves.Imports)

	profile := result.Statuses[2]
	assert.Equal(t, 200, profile.StatusCode)
	require.Len(t, profile.Imports, 1)
	assert.Equal(t, crawl.DataTypePlayerDetails, profile.Imports[0].DataType)
	assert.True(t, profile.Imports[0].Success, profile.Imports[0].Message)

	players := store.Players()
	require.Len(t, players, 2)
	for _, p := range players {
		assert.Equal(t, season, p.Season)
		assert.Equal(t, refid.Generate(p.Name, "Arsenal"), p.ReferenceID)
	}
	assert.Len(t, store.Goalkeeping(), 1)
	assert.Len(t, store.Shooting(), 1)
	require.Len(t, store.PlayerDetails(), 1)
	assert.Equal(t, "Bukayo Ayoyinka Temidayo Saka", store.PlayerDetails()[0].FullName)

	files, err := snapshots.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, files, 5)
	for _, f := range files {
		assert.True(t, strings.Contains(f, "England"), f)
	}
}

func TestCrawlService_ImportFailureIsRecordedPerDataType(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalog := usecasemock.NewCatalogSource(t)
	fetcher := usecasemock.NewPageFetcher(t)
	importer := usecasemock.NewImporter(t)

	catalog.
		On("Catalog", mock.Anything).
		Return(premierLeagueCatalog([]crawl.Entry{{Team: "Arsenal", Season: season, URL: arsenalURL}}, nil), nil).
		Once()
	fetcher.On("IsAlive", mock.Anything).Return(nil).Once()
	fetcher.On("Fetch", mock.Anything, arsenalURL).Return(okPage(arsenalURL), nil).Once()

	var order []crawl.DataType
	record := func(args mock.Arguments) {
		order = append(order, args.Get(1).(usecase.ImportInput).DataType)
	}
	isType := func(dt crawl.DataType) any {
		return mock.MatchedBy(func(in usecase.ImportInput) bool {
			return in.DataType == dt && in.Club == "Arsenal" && in.Season == season && in.League == "Premier League"
		})
	}
	importer.
		On("Import", mock.Anything, isType(crawl.DataTypePlayers)).
		Run(record).
		Return(usecase.ImportResult{Success: true, Saved: 2, Message: "2 players saved"}, nil).
		Once()
	importer.
		On("Import", mock.Anything, isType(crawl.DataTypeGoalkeeping)).
		Run(record).
		Return(usecase.ImportResult{Message: "no items were successfully saved"}, usecase.ErrNothingSaved).
		Once()
	importer.
		On("Import", mock.Anything, isType(crawl.DataTypeShooting)).
		Run(record).
		Return(usecase.ImportResult{Success: true, Saved: 1, Message: "1 shooting saved"}, nil).
		Once()

	service := usecase.NewCrawlService(catalog, fetcher, arsenalParser(), snapshot.NewFileStore(t.TempDir(), logging.NewNop()), importer, nil, usecase.CrawlConfig{}, logging.NewNop())

	results, err := service.Crawl(ctx, "premier-league")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Statuses, 1)

	imports := results[0].Statuses[0].Imports
	require.Len(t, imports, 4)
	assert.True(t, imports[0].Success)
	assert.False(t, imports[1].Success)
	assert.Equal(t, "no items were successfully saved", imports[1].Message)
	assert.True(t, imports[2].Success)
	assert.True(t, imports[3].Success)
	assert.Equal(t, []crawl.DataType{crawl.DataTypePlayers, crawl.DataTypeGoalkeeping, crawl.DataTypeShooting}, order)
}

func TestCrawlService_EmptyTablesAreReported(t *testing.T) {
	t.Parallel()

	catalog := usecasemock.NewCatalogSource(t)
	fetcher := usecasemock.NewPageFetcher(t)
	importer := usecasemock.NewImporter(t)

	catalog.
		On("Catalog", mock.Anything).
		Return(premierLeagueCatalog([]crawl.Entry{{Team: "Arsenal", Season: season, URL: arsenalURL}}, nil), nil).
		Once()
	fetcher.On("IsAlive", mock.Anything).Return(nil).Once()
	fetcher.On("Fetch", mock.Anything, arsenalURL).Return(okPage(arsenalURL), nil).Once()

	service := usecase.NewCrawlService(catalog, fetcher, stubParser{}, snapshot.NewFileStore(t.TempDir(), logging.NewNop()), importer, nil, usecase.CrawlConfig{}, logging.NewNop())

	result, err := service.CrawlLeague(context.Background(), "premier-league")
	require.NoError(t, err)
	require.Len(t, result.Statuses, 1)
	for _, outcome := range result.Statuses[0].Imports {
		assert.False(t, outcome.Success)
		assert.Equal(t, "no records extracted", outcome.Message)
	}
	importer.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

// brokenTableParser panics on one page's shooting table.
type brokenTableParser struct {
	stubParser
	brokenBody string
}

func (p brokenTableParser) Shooting(html, location string) iter.Seq[shooting.Shooting] {
	if html == p.brokenBody {
		panic("shooting table has no header row")
	}
	return p.stubParser.Shooting(html, location)
}

func TestCrawlService_ParserPanicFailsOnlyThatEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	importer, store := newImporter(t)
	catalog := usecasemock.NewCatalogSource(t)
	fetcher := usecasemock.NewPageFetcher(t)

	catalog.
		On("Catalog", mock.Anything).
		Return(premierLeagueCatalog([]crawl.Entry{
			{Team: "Arsenal", Season: season, URL: arsenalURL},
			{Team: "Wolves", Season: season, URL: wolvesURL},
		}, nil), nil).
		Once()
	fetcher.On("IsAlive", mock.Anything).Return(nil).Once()
	broken := okPage(arsenalURL)
	broken.Body = "<html><table id=\"stats_shooting_9\"></table></html>"
	fetcher.On("Fetch", mock.Anything, arsenalURL).Return(broken, nil).Once()
	fetcher.On("Fetch", mock.Anything, wolvesURL).Return(okPage(wolvesURL), nil).Once()

	parser := brokenTableParser{stubParser: arsenalParser(), brokenBody: broken.Body}
	service := usecase.NewCrawlService(catalog, fetcher, parser, snapshot.NewFileStore(t.TempDir(), logging.NewNop()), importer, nil, usecase.CrawlConfig{}, logging.NewNop())

	result, err := service.CrawlLeague(ctx, "premier-league")
	require.NoError(t, err)
	require.Len(t, result.Statuses, 2)

	arsenal := result.Statuses[0]
	assert.Equal(t, 200, arsenal.StatusCode)
	assert.Equal(t, "entry failed: shooting table has no header row", arsenal.Error)
	assert.NotContains(t, arsenal.Error, "goroutine")
	assert.Empty(t, arsenal.Imports)

	wolves := result.Statuses[1]
	assert.Empty(t, wolves.Error)
	require.Len(t, wolves.Imports, 4)
	assert.True(t, wolves.Imports[0].Success, wolves.Imports[0].Message)
	assert.NotEmpty(t, store.Players())
}
