package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/platform/refid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type ImportInput struct {
	Records  []map[string]any
	DataType crawl.DataType
	Club     string
	League   string
	Nation   string
	Season   string
}

type ImportResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Saved    int    `json:"saved"`
	Skipped  int    `json:"skipped"`
	LeagueID int64  `json:"league_id,omitempty"`
	ClubID   int64  `json:"club_id,omitempty"`
}

type ImportConfig struct {
	DefaultLeagueName string
	// SystemLeagues may be matched by name alone when the nation differs.
	SystemLeagues []string
}

// ImportService reconciles one extracted batch against storage inside a
// single transaction it opens and closes itself.
type ImportService struct {
	store         ImportStore
	cfg           ImportConfig
	refs          refid.Generator
	logger        *logging.Logger
	systemLeagues map[string]struct{}
}

func NewImportService(store ImportStore, cfg ImportConfig, refs refid.Generator, logger *logging.Logger) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if refs == nil {
		refs = refid.NewMD5Generator()
	}
	if strings.TrimSpace(cfg.DefaultLeagueName) == "" {
		cfg.DefaultLeagueName = "Unassigned"
	}

	systemLeagues := make(map[string]struct{}, len(cfg.SystemLeagues))
	for _, name := range cfg.SystemLeagues {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			systemLeagues[name] = struct{}{}
		}
	}

	return &ImportService{
		store:         store,
		cfg:           cfg,
		refs:          refs,
		logger:        logger.Named("importer"),
		systemLeagues: systemLeagues,
	}
}

func (s *ImportService) Import(ctx context.Context, input ImportInput) (result ImportResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import",
		attrClub.String(input.Club),
		attrDataType.String(string(input.DataType)),
	)
	defer func() { endUsecaseSpan(span, err) }()

	clubName := strings.TrimSpace(input.Club)
	if clubName == "" {
		return failedImport("club name is required"), fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}
	if !input.DataType.Importable() {
		msg := fmt.Sprintf("unsupported data type %q", input.DataType)
		return failedImport(msg), fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	if s.store == nil {
		return failedImport("import store is not configured"), fmt.Errorf("%w: import store is not configured", ErrDependencyUnavailable)
	}

	unit, err := s.store.BeginImport(ctx)
	if err != nil {
		return failedImport(err.Error()), fmt.Errorf("%w: begin import: %v", ErrDependencyUnavailable, err)
	}

	committed := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import %s for club %q panicked: %v", input.DataType, clubName, r)
			result = failedImport(err.Error())
		}
		if !committed {
			if rbErr := unit.Rollback(); rbErr != nil {
				s.logger.WarnContext(ctx, "rollback import failed", "club", clubName, "error", rbErr)
			}
		}
	}()

	lg, err := s.resolveLeague(ctx, unit, input.League, input.Nation)
	if err != nil {
		return failedImport(err.Error()), fmt.Errorf("resolve league: %w", err)
	}
	cl, err := s.resolveClub(ctx, unit, clubName, input.Nation, lg)
	if err != nil {
		return failedImport(err.Error()), fmt.Errorf("resolve club: %w", err)
	}

	batch := importBatch{
		unit:   unit,
		input:  input,
		club:   cl,
		league: lg,
	}

	var saved, skipped int
	switch input.DataType {
	case crawl.DataTypePlayers:
		saved, skipped, err = s.importPlayers(ctx, batch)
	case crawl.DataTypePlayerDetails:
		saved, skipped, err = s.importDetails(ctx, batch)
	case crawl.DataTypeGoalkeeping:
		saved, skipped, err = s.importGoalkeeping(ctx, batch)
	case crawl.DataTypeShooting:
		saved, skipped, err = s.importShooting(ctx, batch)
	}
	if err != nil {
		return failedImport(err.Error()), fmt.Errorf("import %s: %w", input.DataType, err)
	}

	if saved == 0 {
		s.logger.WarnContext(ctx, "import saved nothing, rolling back",
			"data_type", input.DataType,
			"club", clubName,
			"season", input.Season,
			"records", len(input.Records),
		)
		out := failedImport(ErrNothingSaved.Error())
		out.Skipped = skipped
		return out, ErrNothingSaved
	}

	if err := unit.Commit(); err != nil {
		return failedImport(err.Error()), fmt.Errorf("commit import: %w", err)
	}
	committed = true

	s.logger.InfoContext(ctx, "import committed",
		"data_type", input.DataType,
		"club", cl.Name,
		"league", lg.Name,
		"season", input.Season,
		"saved", saved,
		"skipped", skipped,
	)

	return ImportResult{
		Success:  true,
		Message:  fmt.Sprintf("%d %s saved", saved, input.DataType),
		Saved:    saved,
		Skipped:  skipped,
		LeagueID: lg.ID,
		ClubID:   cl.ID,
	}, nil
}

type importBatch struct {
	unit   ImportUnit
	input  ImportInput
	club   club.Club
	league league.League
}

// season prefers the batch season over the one a record carries.
func (b importBatch) season(recordSeason string) string {
	if season := strings.TrimSpace(b.input.Season); season != "" {
		return season
	}
	return strings.TrimSpace(recordSeason)
}

func failedImport(message string) ImportResult {
	return ImportResult{Success: false, Message: message}
}

func (s *ImportService) resolveLeague(ctx context.Context, unit ImportUnit, name, nation string) (league.League, error) {
	name = strings.TrimSpace(name)
	nation = strings.TrimSpace(nation)
	repo := unit.Leagues()

	if name != "" {
		item, ok, err := s.findLeague(ctx, repo, name, nation)
		if err != nil {
			return league.League{}, err
		}
		if ok {
			return item, nil
		}

		created, err := repo.Create(ctx, league.League{Name: name, Nation: nation})
		if err == nil {
			s.logger.InfoContext(ctx, "league created", "league", name, "nation", nation, "league_id", created.ID)
			return created, nil
		}

		// A concurrent import may have committed the same league between the
		// lookup and the insert.
		if item, ok, findErr := s.findLeague(ctx, repo, name, nation); findErr == nil && ok {
			s.logger.InfoContext(ctx, "league created concurrently, reusing it",
				"league", name,
				"nation", nation,
				"league_id", item.ID,
			)
			return item, nil
		}
		s.logger.WarnContext(ctx, "create league failed, using default league",
			"league", name,
			"nation", nation,
			"error", err,
		)
	}

	def, ok, err := repo.FindByName(ctx, s.cfg.DefaultLeagueName)
	if err != nil {
		return league.League{}, err
	}
	if ok {
		return def, nil
	}
	return repo.Create(ctx, league.League{Name: s.cfg.DefaultLeagueName, IsDefault: true})
}

// findLeague matches on (name, nation) and, for system leagues, on name only.
func (s *ImportService) findLeague(ctx context.Context, repo league.Repository, name, nation string) (league.League, bool, error) {
	item, ok, err := repo.FindByNameAndNation(ctx, name, nation)
	if err != nil || ok || !s.isSystemLeague(name) {
		return item, ok, err
	}
	return repo.FindByName(ctx, name)
}

func (s *ImportService) isSystemLeague(name string) bool {
	_, ok := s.systemLeagues[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func (s *ImportService) resolveClub(ctx context.Context, unit ImportUnit, name, nation string, lg league.League) (club.Club, error) {
	repo := unit.Clubs()

	items, err := repo.ListByNameAndNation(ctx, name, strings.TrimSpace(nation))
	if err != nil {
		return club.Club{}, err
	}
	if len(items) == 0 {
		created, createErr := repo.Create(ctx, club.Club{Name: name, Nation: strings.TrimSpace(nation), LeagueID: lg.ID})
		if createErr == nil {
			s.logger.InfoContext(ctx, "club created", "club", name, "league", lg.Name, "club_id", created.ID)
			return created, nil
		}
		// Lost an insert race: continue with the committed row.
		items, err = repo.ListByNameAndNation(ctx, name, strings.TrimSpace(nation))
		if err != nil || len(items) == 0 {
			return club.Club{}, createErr
		}
		s.logger.InfoContext(ctx, "club created concurrently, reusing it", "club", name, "club_id", items[0].ID)
	}

	picked := items[0]
	for _, item := range items {
		if item.LeagueID == lg.ID {
			picked = item
			break
		}
	}

	if picked.LeagueID != lg.ID {
		if err := repo.UpdateLeague(ctx, picked.ID, lg.ID); err != nil {
			return club.Club{}, err
		}
		s.logger.InfoContext(ctx, "club moved to league",
			"club", picked.Name,
			"from_league_id", picked.LeagueID,
			"to_league_id", lg.ID,
		)
		picked.LeagueID = lg.ID
	}

	return picked, nil
}

func (s *ImportService) importPlayers(ctx context.Context, batch importBatch) (int, int, error) {
	repo := batch.unit.Players()
	saved, skipped := 0, 0

	for i, raw := range batch.input.Records {
		item := decodeRecord(raw, playerBindings)
		item.ClubID = batch.club.ID
		item.Season = batch.season(item.Season)
		if item.ReferenceID == "" && item.Name != "" {
			item.ReferenceID = s.refs.Generate(item.Name, batch.input.Club)
		}

		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skip player record", "index", i, "error", err)
			skipped++
			continue
		}
		if _, err := repo.Upsert(ctx, item); err != nil {
			return saved, skipped, fmt.Errorf("upsert player %q: %w", item.Name, err)
		}
		saved++
	}

	return saved, skipped, nil
}

func (s *ImportService) importDetails(ctx context.Context, batch importBatch) (int, int, error) {
	players := batch.unit.Players()
	repo := batch.unit.PlayerDetails()
	saved, skipped := 0, 0

	for i, raw := range batch.input.Records {
		item := decodeRecord(raw, detailsBindings)
		if item.FullName == "" || item.ReferenceID == "" {
			s.logger.WarnContext(ctx, "skip player details without full name or reference id", "index", i)
			skipped++
			continue
		}

		owner, ok, err := players.FindLatestByReference(ctx, item.ReferenceID, batch.club.ID)
		if err != nil {
			return saved, skipped, fmt.Errorf("find player %s: %w", item.ReferenceID, err)
		}
		if !ok {
			s.logger.WarnContext(ctx, "skip player details without owning player",
				"full_name", item.FullName,
				"reference_id", item.ReferenceID,
				"club", batch.club.Name,
			)
			skipped++
			continue
		}

		item.PlayerID = owner.ID
		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skip player details record", "index", i, "error", err)
			skipped++
			continue
		}
		if _, err := repo.Upsert(ctx, item); err != nil {
			return saved, skipped, fmt.Errorf("upsert player details %q: %w", item.FullName, err)
		}
		saved++
	}

	return saved, skipped, nil
}

func (s *ImportService) importGoalkeeping(ctx context.Context, batch importBatch) (int, int, error) {
	repo := batch.unit.Goalkeeping()
	owners := newOwnerIndex(batch.unit.Players(), batch.club)
	saved, skipped := 0, 0

	for _, raw := range batch.input.Records {
		item := decodeRecord(raw, goalkeepingBindings)
		item.Season = batch.season(item.Season)

		owner, ok, err := s.locateOwner(ctx, owners, item.PlayerName, item.Season)
		if err != nil {
			return saved, skipped, err
		}
		if !ok {
			skipped++
			continue
		}

		item.PlayerID = owner.ID
		item.ReferenceID = owner.ReferenceID
		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skip goalkeeping record", "player", item.PlayerName, "error", err)
			skipped++
			continue
		}
		if _, err := repo.Upsert(ctx, item); err != nil {
			return saved, skipped, fmt.Errorf("upsert goalkeeping %q: %w", item.PlayerName, err)
		}
		saved++
	}

	return saved, skipped, nil
}

func (s *ImportService) importShooting(ctx context.Context, batch importBatch) (int, int, error) {
	repo := batch.unit.Shooting()
	owners := newOwnerIndex(batch.unit.Players(), batch.club)
	saved, skipped := 0, 0

	for _, raw := range batch.input.Records {
		item := decodeRecord(raw, shootingBindings)
		item.Season = batch.season(item.Season)

		owner, ok, err := s.locateOwner(ctx, owners, item.PlayerName, item.Season)
		if err != nil {
			return saved, skipped, err
		}
		if !ok {
			skipped++
			continue
		}

		item.PlayerID = owner.ID
		item.ReferenceID = owner.ReferenceID
		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skip shooting record", "player", item.PlayerName, "error", err)
			skipped++
			continue
		}
		if _, err := repo.Upsert(ctx, item); err != nil {
			return saved, skipped, fmt.Errorf("upsert shooting %q: %w", item.PlayerName, err)
		}
		saved++
	}

	return saved, skipped, nil
}

// ownerIndex caches a club's players per season for one batch.
type ownerIndex struct {
	repo     player.Repository
	club     club.Club
	bySeason map[string][]player.Player
}

func newOwnerIndex(repo player.Repository, cl club.Club) *ownerIndex {
	return &ownerIndex{repo: repo, club: cl, bySeason: make(map[string][]player.Player)}
}

func (o *ownerIndex) candidates(ctx context.Context, season string) ([]player.Player, error) {
	if items, ok := o.bySeason[season]; ok {
		return items, nil
	}
	items, err := o.repo.ListByClubSeason(ctx, o.club.ID, season)
	if err != nil {
		return nil, fmt.Errorf("list players for club %q season %s: %w", o.club.Name, season, err)
	}
	slices.SortStableFunc(items, func(a, b player.Player) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	o.bySeason[season] = items
	return items, nil
}

// locateOwner finds the player whose folded name contains, or is contained
// in, the folded record name. The first match in id order wins.
func (s *ImportService) locateOwner(ctx context.Context, owners *ownerIndex, name, season string) (player.Player, bool, error) {
	candidates, err := owners.candidates(ctx, season)
	if err != nil {
		return player.Player{}, false, err
	}

	folded := foldName(name)
	if folded == "" {
		s.logger.WarnContext(ctx, "skip record without player name", "club", owners.club.Name, "season", season)
		return player.Player{}, false, nil
	}

	var matches []player.Player
	for _, candidate := range candidates {
		other := foldName(candidate.Name)
		if other == "" {
			continue
		}
		if strings.Contains(other, folded) || strings.Contains(folded, other) {
			matches = append(matches, candidate)
		}
	}

	if len(matches) == 0 {
		names := make([]string, 0, len(candidates))
		nearest, best := "", -1.0
		for _, candidate := range candidates {
			names = append(names, candidate.Name)
			if score := matchr.JaroWinkler(folded, foldName(candidate.Name), false); score > best {
				nearest, best = candidate.Name, score
			}
		}
		s.logger.WarnContext(ctx, "no owning player matched, skipping record",
			"player", name,
			"club", owners.club.Name,
			"season", season,
			"candidates", names,
			"nearest", nearest,
			"nearest_score", best,
		)
		return player.Player{}, false, nil
	}

	if len(matches) > 1 {
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		s.logger.WarnContext(ctx, "several players matched, using the first",
			"player", name,
			"club", owners.club.Name,
			"season", season,
			"matches", names,
		)
	}

	return matches[0], true, nil
}

// foldName lowercases, strips diacritics and collapses whitespace so that
// "José Sá" and "Jose Sa" compare equal.
func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// ImportFailureMessage returns the readable reason an import failed.
func ImportFailureMessage(result ImportResult, err error) string {
	if result.Message != "" {
		return result.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// IsNothingSaved reports whether err is the zero-saved rollback.
func IsNothingSaved(err error) bool {
	return errors.Is(err, ErrNothingSaved)
}
