package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
	"github.com/riskibarqy/fbref-crawler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/platform/refid"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const season = "2023-2024"

func newImporter(t *testing.T) (*usecase.ImportService, *memory.Store) {
	t.Helper()

	store := memory.NewStore("Unassigned")
	service := usecase.NewImportService(store, usecase.ImportConfig{
		DefaultLeagueName: "Unassigned",
		SystemLeagues:     []string{"Champions League"},
	}, refid.NewMD5Generator(), logging.NewNop())
	return service, store
}

func playerRecord(name string, goals float64) map[string]any {
	return map[string]any{
		"player_name":    name,
		"nation":         "ENG",
		"position":       "FW",
		"age":            "22-110",
		"matches_played": float64(35),
		"minutes":        "2,978",
		"goals":          goals,
		"xg":             14.3,
		"reference_id":   refid.Generate(name, "Arsenal"),
	}
}

func importPlayers(t *testing.T, service *usecase.ImportService, club, league, nation string, records ...map[string]any) usecase.ImportResult {
	t.Helper()

	result, err := service.Import(context.Background(), usecase.ImportInput{
		Records:  records,
		DataType: crawl.DataTypePlayers,
		Club:     club,
		League:   league,
		Nation:   nation,
		Season:   season,
	})
	if err != nil {
		t.Fatalf("import players: %v", err)
	}
	return result
}

func TestImportService_PlayersUpsertConverges(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)

	first := importPlayers(t, service, "Arsenal", "Premier League", "England",
		playerRecord("Bukayo Saka", 14),
		playerRecord("Martin Ødegaard", 8),
	)
	require.True(t, first.Success)
	assert.Equal(t, 2, first.Saved)
	assert.Equal(t, "2 players saved", first.Message)

	second := importPlayers(t, service, "Arsenal", "Premier League", "England",
		playerRecord("Bukayo Saka", 16),
		playerRecord("Martin Ødegaard", 8),
	)
	require.True(t, second.Success)

	players := store.Players()
	if len(players) != 2 {
		t.Fatalf("unexpected player rows after re-import: got=%d want=2", len(players))
	}
	for _, p := range players {
		if p.Name == "Bukayo Saka" && p.Goals != 16 {
			t.Fatalf("expected re-import to update goals: got=%d want=16", p.Goals)
		}
		assert.Equal(t, season, p.Season)
		assert.Equal(t, 2978, p.Minutes)
		assert.Equal(t, 22, p.Age)
	}
	assert.Len(t, store.Clubs(), 1)
}

func TestImportService_PlayersAcceptCamelCaseFallbacks(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)

	result := importPlayers(t, service, "Arsenal", "Premier League", "England", map[string]any{
		"playerName":    "Declan Rice",
		"matchesPlayed": float64(38),
		"goals":         float64(7),
	})
	require.True(t, result.Success)

	players := store.Players()
	require.Len(t, players, 1)
	assert.Equal(t, "Declan Rice", players[0].Name)
	assert.Equal(t, 38, players[0].MatchesPlayed)
	assert.Equal(t, refid.Generate("Declan Rice", "Arsenal"), players[0].ReferenceID)
}

func TestImportService_RequiresClub(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)

	result, err := service.Import(context.Background(), usecase.ImportInput{
		Records:  []map[string]any{playerRecord("Bukayo Saka", 14)},
		DataType: crawl.DataTypePlayers,
		Club:     "  ",
		Season:   season,
	})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, store.Players())
}

func TestImportService_RejectsMatchLogs(t *testing.T) {
	t.Parallel()

	service, _ := newImporter(t)

	_, err := service.Import(context.Background(), usecase.ImportInput{
		Records:  []map[string]any{{"date": "2023-08-12"}},
		DataType: crawl.DataTypeMatchLogs,
		Club:     "Arsenal",
	})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestImportService_UnmatchedGoalkeepingBatchRollsBack(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)
	importPlayers(t, service, "Arsenal", "Premier League", "England", playerRecord("Bukayo Saka", 14))

	result, err := service.Import(context.Background(), usecase.ImportInput{
		Records: []map[string]any{
			{"player_name": "Unknown Keeper", "saves": float64(80)},
			{"player_name": "Another Stranger", "saves": float64(12)},
		},
		DataType: crawl.DataTypeGoalkeeping,
		Club:     "Arsenal",
		League:   "Premier League",
		Nation:   "England",
		Season:   season,
	})
	if !usecase.IsNothingSaved(err) {
		t.Fatalf("expected nothing-saved error, got %v", err)
	}
	assert.False(t, result.Success)
	assert.Equal(t, "no items were successfully saved", result.Message)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, store.Goalkeeping())
}

func TestImportService_GoalkeeperMatchIgnoresDiacritics(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)
	importPlayers(t, service, "Wolves", "Premier League", "England", playerRecord("José Sá", 0))

	result, err := service.Import(context.Background(), usecase.ImportInput{
		Records:  []map[string]any{{"player_name": "Jose Sa", "saves": float64(128), "save_percentage": "72.5"}},
		DataType: crawl.DataTypeGoalkeeping,
		Club:     "Wolves",
		League:   "Premier League",
		Nation:   "England",
		Season:   season,
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	players := store.Players()
	keepers := store.Goalkeeping()
	require.Len(t, players, 1)
	require.Len(t, keepers, 1)
	assert.Equal(t, players[0].ID, keepers[0].PlayerID)
	assert.Equal(t, players[0].ReferenceID, keepers[0].ReferenceID)
	assert.Equal(t, 128, keepers[0].Saves)
	assert.InDelta(t, 72.5, keepers[0].SavePercentage, 0.001)
}

func TestImportService_ShootingPicksFirstMatchByID(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)
	importPlayers(t, service, "Arsenal", "Premier League", "England",
		playerRecord("Gabriel Jesus", 4),
		playerRecord("Gabriel Magalhães", 4),
	)

	result, err := service.Import(context.Background(), usecase.ImportInput{
		Records:  []map[string]any{{"player_name": "Gabriel", "shots": float64(40)}},
		DataType: crawl.DataTypeShooting,
		Club:     "Arsenal",
		League:   "Premier League",
		Nation:   "England",
		Season:   season,
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	shots := store.Shooting()
	require.Len(t, shots, 1)

	var jesus int64
	for _, p := range store.Players() {
		if p.Name == "Gabriel Jesus" {
			jesus = p.ID
		}
	}
	assert.Equal(t, jesus, shots[0].PlayerID)
}

func TestImportService_RepointsClubToNewLeague(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)

	first := importPlayers(t, service, "Arsenal", "Premier League", "England", playerRecord("Bukayo Saka", 14))
	second := importPlayers(t, service, "Arsenal", "Champions League", "England", playerRecord("Bukayo Saka", 4))

	if first.ClubID != second.ClubID {
		t.Fatalf("expected the same club row: first=%d second=%d", first.ClubID, second.ClubID)
	}
	if first.LeagueID == second.LeagueID {
		t.Fatalf("expected a different league on the second import")
	}

	clubs := store.Clubs()
	require.Len(t, clubs, 1)
	assert.Equal(t, second.LeagueID, clubs[0].LeagueID)
}

func TestImportService_SystemLeagueMatchesByName(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)

	first := importPlayers(t, service, "Arsenal", "Champions League", "England", playerRecord("Bukayo Saka", 4))
	second := importPlayers(t, service, "Real Madrid", "Champions League", "Spain", playerRecord("Jude Bellingham", 4))

	assert.Equal(t, first.LeagueID, second.LeagueID)
	count := 0
	for _, lg := range store.Leagues() {
		if lg.Name == "Champions League" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestImportService_EmptyLeagueFallsBackToDefault(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)

	result := importPlayers(t, service, "Arsenal", "", "England", playerRecord("Bukayo Saka", 14))

	var defaultID int64
	for _, lg := range store.Leagues() {
		if lg.IsDefault {
			defaultID = lg.ID
		}
	}
	require.NotZero(t, defaultID)
	assert.Equal(t, defaultID, result.LeagueID)
}

func TestImportService_PlayerDetails(t *testing.T) {
	t.Parallel()

	service, store := newImporter(t)
	importPlayers(t, service, "Arsenal", "Premier League", "England", playerRecord("Bukayo Saka", 14))

	ref := refid.Generate("Bukayo Saka", "Arsenal")
	result, err := service.Import(context.Background(), usecase.ImportInput{
		Records: []map[string]any{
			{"reference_id": ref, "name": "Bukayo Saka", "full_name": "Bukayo Ayoyinka Temidayo Saka", "citizenship": "England"},
			{"reference_id": refid.Generate("Nobody", "Arsenal"), "full_name": "No Player"},
			{"reference_id": ref},
		},
		DataType: crawl.DataTypePlayerDetails,
		Club:     "Arsenal",
		League:   "Premier League",
		Nation:   "England",
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 2, result.Skipped)

	details := store.PlayerDetails()
	require.Len(t, details, 1)
	assert.Equal(t, "Bukayo Ayoyinka Temidayo Saka", details[0].FullName)
	assert.Equal(t, store.Players()[0].ID, details[0].PlayerID)
}

// racingStore makes the next league or club lookup miss and the following
// insert fail, the way a transaction sees a row another import committed
// between its lookup and its insert.
type racingStore struct {
	usecase.ImportStore
	leagueRace bool
	clubRace   bool
}

func (s *racingStore) BeginImport(ctx context.Context) (usecase.ImportUnit, error) {
	u, err := s.ImportStore.BeginImport(ctx)
	if err != nil {
		return nil, err
	}
	return racingUnit{ImportUnit: u, store: s}, nil
}

type racingUnit struct {
	usecase.ImportUnit
	store *racingStore
}

func (u racingUnit) Leagues() league.Repository {
	return racingLeagues{Repository: u.ImportUnit.Leagues(), store: u.store}
}

func (u racingUnit) Clubs() club.Repository {
	return racingClubs{Repository: u.ImportUnit.Clubs(), store: u.store}
}

var errUniqueViolation = errors.New("duplicate key value violates unique constraint")

type racingLeagues struct {
	league.Repository
	store *racingStore
}

func (r racingLeagues) FindByNameAndNation(ctx context.Context, name, nation string) (league.League, bool, error) {
	if r.store.leagueRace {
		return league.League{}, false, nil
	}
	return r.Repository.FindByNameAndNation(ctx, name, nation)
}

func (r racingLeagues) Create(ctx context.Context, item league.League) (league.League, error) {
	if r.store.leagueRace {
		r.store.leagueRace = false
		return league.League{}, errUniqueViolation
	}
	return r.Repository.Create(ctx, item)
}

type racingClubs struct {
	club.Repository
	store *racingStore
}

func (r racingClubs) ListByNameAndNation(ctx context.Context, name, nation string) ([]club.Club, error) {
	if r.store.clubRace {
		return nil, nil
	}
	return r.Repository.ListByNameAndNation(ctx, name, nation)
}

func (r racingClubs) Create(ctx context.Context, item club.Club) (club.Club, error) {
	if r.store.clubRace {
		r.store.clubRace = false
		return club.Club{}, errUniqueViolation
	}
	return r.Repository.Create(ctx, item)
}

func newRacingImporter(t *testing.T) (*usecase.ImportService, *usecase.ImportService, *racingStore, *memory.Store) {
	t.Helper()

	plain, store := newImporter(t)
	racing := &racingStore{ImportStore: store}
	service := usecase.NewImportService(racing, usecase.ImportConfig{
		DefaultLeagueName: "Unassigned",
		SystemLeagues:     []string{"Champions League"},
	}, refid.NewMD5Generator(), logging.NewNop())
	return plain, service, racing, store
}

func TestImportService_ReusesLeagueCreatedConcurrently(t *testing.T) {
	t.Parallel()

	plain, service, racing, store := newRacingImporter(t)
	first := importPlayers(t, plain, "Arsenal", "Premier League", "England", playerRecord("Bukayo Saka", 14))

	racing.leagueRace = true
	second := importPlayers(t, service, "Arsenal", "Premier League", "England", playerRecord("Bukayo Saka", 15))

	assert.False(t, racing.leagueRace, "insert should have been attempted")
	assert.Equal(t, first.LeagueID, second.LeagueID)
	assert.Equal(t, first.ClubID, second.ClubID)

	clubs := store.Clubs()
	require.Len(t, clubs, 1)
	assert.Equal(t, first.LeagueID, clubs[0].LeagueID, "club must not be moved to the default league")
}

func TestImportService_ReusesClubCreatedConcurrently(t *testing.T) {
	t.Parallel()

	plain, service, racing, store := newRacingImporter(t)
	first := importPlayers(t, plain, "Arsenal", "Premier League", "England", playerRecord("Bukayo Saka", 14))

	racing.clubRace = true
	second := importPlayers(t, service, "Arsenal", "Premier League", "England", playerRecord("Martin Odegaard", 8))

	assert.False(t, racing.clubRace, "insert should have been attempted")
	assert.True(t, second.Success)
	assert.Equal(t, first.ClubID, second.ClubID)
	assert.Len(t, store.Clubs(), 1)
}
