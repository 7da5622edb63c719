package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	"github.com/riskibarqy/fbref-crawler/internal/platform/htmltable"
)

// fieldDescriptor resolves one field of a loosely keyed JSON record: the
// canonical snake_case key wins, then the camelCase fallback, then Default.
type fieldDescriptor struct {
	Canonical string
	Fallback  string
	Default   any
}

func (d fieldDescriptor) lookup(rec map[string]any) (any, bool) {
	if v, ok := rec[d.Canonical]; ok && v != nil {
		return v, true
	}
	if d.Fallback != "" {
		if v, ok := rec[d.Fallback]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (d fieldDescriptor) text(rec map[string]any) string {
	v, ok := d.lookup(rec)
	if !ok {
		s, _ := d.Default.(string)
		return s
	}
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		s, _ := d.Default.(string)
		return s
	}
}

func (d fieldDescriptor) integer(rec map[string]any) int {
	v, ok := d.lookup(rec)
	if !ok {
		n, _ := d.Default.(int)
		return n
	}
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0
		}
		return int(value)
	case int:
		return value
	case int64:
		return int(value)
	case string:
		return htmltable.ParseInt(value)
	default:
		n, _ := d.Default.(int)
		return n
	}
}

func (d fieldDescriptor) decimal(rec map[string]any) float64 {
	v, ok := d.lookup(rec)
	if !ok {
		f, _ := d.Default.(float64)
		return f
	}
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case string:
		return htmltable.ParseFloat(value)
	default:
		f, _ := d.Default.(float64)
		return f
	}
}

// recordBinding copies one resolved field into a record of type T.
type recordBinding[T any] struct {
	field fieldDescriptor
	apply func(rec *T, d fieldDescriptor, raw map[string]any)
}

func textField[T any](canonical string, set func(*T, string)) recordBinding[T] {
	return recordBinding[T]{
		field: fieldDescriptor{Canonical: canonical, Fallback: camelCase(canonical), Default: ""},
		apply: func(rec *T, d fieldDescriptor, raw map[string]any) { set(rec, d.text(raw)) },
	}
}

func intField[T any](canonical string, set func(*T, int)) recordBinding[T] {
	return recordBinding[T]{
		field: fieldDescriptor{Canonical: canonical, Fallback: camelCase(canonical), Default: 0},
		apply: func(rec *T, d fieldDescriptor, raw map[string]any) { set(rec, d.integer(raw)) },
	}
}

func floatField[T any](canonical string, set func(*T, float64)) recordBinding[T] {
	return recordBinding[T]{
		field: fieldDescriptor{Canonical: canonical, Fallback: camelCase(canonical), Default: 0.0},
		apply: func(rec *T, d fieldDescriptor, raw map[string]any) { set(rec, d.decimal(raw)) },
	}
}

func ageField[T any](set func(*T, int)) recordBinding[T] {
	return recordBinding[T]{
		field: fieldDescriptor{Canonical: "age", Fallback: "Age", Default: 0},
		apply: func(rec *T, d fieldDescriptor, raw map[string]any) { set(rec, htmltable.ParseAge(d.text(raw))) },
	}
}

func decodeRecord[T any](raw map[string]any, bindings []recordBinding[T]) T {
	var out T
	for _, b := range bindings {
		b.apply(&out, b.field, raw)
	}
	return out
}

// camelCase turns "goals_per90" into "goalsPer90".
func camelCase(snake string) string {
	parts := strings.Split(snake, "_")
	var b strings.Builder
	b.Grow(len(snake))
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

var playerBindings = []recordBinding[player.Player]{
	textField("reference_id", func(p *player.Player, v string) { p.ReferenceID = v }),
	textField("fbref_id", func(p *player.Player, v string) { p.FbrefID = v }),
	textField("player_name", func(p *player.Player, v string) { p.Name = v }),
	textField("nation", func(p *player.Player, v string) { p.Nation = v }),
	textField("position", func(p *player.Player, v string) { p.Position = v }),
	ageField(func(p *player.Player, v int) { p.Age = v }),
	textField("season", func(p *player.Player, v string) { p.Season = v }),
	intField("matches_played", func(p *player.Player, v int) { p.MatchesPlayed = v }),
	intField("starts", func(p *player.Player, v int) { p.Starts = v }),
	intField("minutes", func(p *player.Player, v int) { p.Minutes = v }),
	floatField("nineties", func(p *player.Player, v float64) { p.Nineties = v }),
	intField("goals", func(p *player.Player, v int) { p.Goals = v }),
	intField("assists", func(p *player.Player, v int) { p.Assists = v }),
	intField("goals_assists", func(p *player.Player, v int) { p.GoalsAssists = v }),
	intField("non_penalty_goals", func(p *player.Player, v int) { p.NonPenaltyGoals = v }),
	intField("penalty_goals", func(p *player.Player, v int) { p.PenaltyGoals = v }),
	intField("penalty_attempts", func(p *player.Player, v int) { p.PenaltyAttempts = v }),
	intField("yellow_cards", func(p *player.Player, v int) { p.YellowCards = v }),
	intField("red_cards", func(p *player.Player, v int) { p.RedCards = v }),
	floatField("xg", func(p *player.Player, v float64) { p.XG = v }),
	floatField("npxg", func(p *player.Player, v float64) { p.NPXG = v }),
	floatField("xag", func(p *player.Player, v float64) { p.XAG = v }),
	floatField("npxg_xag", func(p *player.Player, v float64) { p.NPXGXAG = v }),
	intField("progressive_carries", func(p *player.Player, v int) { p.ProgressiveCarries = v }),
	intField("progressive_passes", func(p *player.Player, v int) { p.ProgressivePasses = v }),
	intField("progressive_receives", func(p *player.Player, v int) { p.ProgressiveReceives = v }),
	floatField("goals_per90", func(p *player.Player, v float64) { p.GoalsPer90 = v }),
	floatField("assists_per90", func(p *player.Player, v float64) { p.AssistsPer90 = v }),
	floatField("goals_assists_per90", func(p *player.Player, v float64) { p.GoalsAssistsPer90 = v }),
	floatField("non_penalty_goals_per90", func(p *player.Player, v float64) { p.NonPenaltyGoalsPer90 = v }),
	floatField("goals_assists_non_penalty_per90", func(p *player.Player, v float64) { p.GoalsAssistsNonPenaltyPer90 = v }),
	floatField("xg_per90", func(p *player.Player, v float64) { p.XGPer90 = v }),
	floatField("xag_per90", func(p *player.Player, v float64) { p.XAGPer90 = v }),
	floatField("xg_xag_per90", func(p *player.Player, v float64) { p.XGXAGPer90 = v }),
	floatField("npxg_per90", func(p *player.Player, v float64) { p.NPXGPer90 = v }),
	floatField("npxg_xag_per90", func(p *player.Player, v float64) { p.NPXGXAGPer90 = v }),
}

var detailsBindings = []recordBinding[player.Details]{
	textField("reference_id", func(d *player.Details, v string) { d.ReferenceID = v }),
	textField("name", func(d *player.Details, v string) { d.Name = v }),
	textField("full_name", func(d *player.Details, v string) { d.FullName = v }),
	textField("born", func(d *player.Details, v string) { d.Born = v }),
	textField("citizenship", func(d *player.Details, v string) { d.Citizenship = v }),
	textField("position", func(d *player.Details, v string) { d.Position = v }),
	textField("club", func(d *player.Details, v string) { d.Club = v }),
}

var goalkeepingBindings = []recordBinding[goalkeeping.Goalkeeping]{
	textField("player_name", func(g *goalkeeping.Goalkeeping, v string) { g.PlayerName = v }),
	textField("nation", func(g *goalkeeping.Goalkeeping, v string) { g.Nation = v }),
	textField("position", func(g *goalkeeping.Goalkeeping, v string) { g.Position = v }),
	ageField(func(g *goalkeeping.Goalkeeping, v int) { g.Age = v }),
	textField("season", func(g *goalkeeping.Goalkeeping, v string) { g.Season = v }),
	intField("matches_played", func(g *goalkeeping.Goalkeeping, v int) { g.MatchesPlayed = v }),
	intField("starts", func(g *goalkeeping.Goalkeeping, v int) { g.Starts = v }),
	intField("minutes", func(g *goalkeeping.Goalkeeping, v int) { g.Minutes = v }),
	floatField("nineties", func(g *goalkeeping.Goalkeeping, v float64) { g.Nineties = v }),
	intField("goals_against", func(g *goalkeeping.Goalkeeping, v int) { g.GoalsAgainst = v }),
	floatField("goals_against_per90", func(g *goalkeeping.Goalkeeping, v float64) { g.GoalsAgainstPer90 = v }),
	intField("shots_on_target_against", func(g *goalkeeping.Goalkeeping, v int) { g.ShotsOnTargetAgainst = v }),
	intField("saves", func(g *goalkeeping.Goalkeeping, v int) { g.Saves = v }),
	floatField("save_percentage", func(g *goalkeeping.Goalkeeping, v float64) { g.SavePercentage = v }),
	intField("wins", func(g *goalkeeping.Goalkeeping, v int) { g.Wins = v }),
	intField("draws", func(g *goalkeeping.Goalkeeping, v int) { g.Draws = v }),
	intField("losses", func(g *goalkeeping.Goalkeeping, v int) { g.Losses = v }),
	intField("clean_sheets", func(g *goalkeeping.Goalkeeping, v int) { g.CleanSheets = v }),
	floatField("clean_sheet_percentage", func(g *goalkeeping.Goalkeeping, v float64) { g.CleanSheetPercentage = v }),
	intField("penalties_faced", func(g *goalkeeping.Goalkeeping, v int) { g.PenaltiesFaced = v }),
	intField("penalties_allowed", func(g *goalkeeping.Goalkeeping, v int) { g.PenaltiesAllowed = v }),
	intField("penalties_saved", func(g *goalkeeping.Goalkeeping, v int) { g.PenaltiesSaved = v }),
	intField("penalties_missed", func(g *goalkeeping.Goalkeeping, v int) { g.PenaltiesMissed = v }),
	floatField("penalty_save_percentage", func(g *goalkeeping.Goalkeeping, v float64) { g.PenaltySavePercentage = v }),
}

var shootingBindings = []recordBinding[shooting.Shooting]{
	textField("player_name", func(s *shooting.Shooting, v string) { s.PlayerName = v }),
	textField("nation", func(s *shooting.Shooting, v string) { s.Nation = v }),
	textField("position", func(s *shooting.Shooting, v string) { s.Position = v }),
	ageField(func(s *shooting.Shooting, v int) { s.Age = v }),
	textField("season", func(s *shooting.Shooting, v string) { s.Season = v }),
	floatField("nineties", func(s *shooting.Shooting, v float64) { s.Nineties = v }),
	intField("goals", func(s *shooting.Shooting, v int) { s.Goals = v }),
	intField("shots", func(s *shooting.Shooting, v int) { s.Shots = v }),
	intField("shots_on_target", func(s *shooting.Shooting, v int) { s.ShotsOnTarget = v }),
	floatField("shots_on_target_percentage", func(s *shooting.Shooting, v float64) { s.ShotsOnTargetPercentage = v }),
	floatField("shots_per90", func(s *shooting.Shooting, v float64) { s.ShotsPer90 = v }),
	floatField("shots_on_target_per90", func(s *shooting.Shooting, v float64) { s.ShotsOnTargetPer90 = v }),
	floatField("goals_per_shot", func(s *shooting.Shooting, v float64) { s.GoalsPerShot = v }),
	floatField("goals_per_shot_on_target", func(s *shooting.Shooting, v float64) { s.GoalsPerShotOnTarget = v }),
	floatField("average_shot_distance", func(s *shooting.Shooting, v float64) { s.AverageShotDistance = v }),
	intField("free_kicks", func(s *shooting.Shooting, v int) { s.FreeKicks = v }),
	intField("penalty_goals", func(s *shooting.Shooting, v int) { s.PenaltyGoals = v }),
	intField("penalty_attempts", func(s *shooting.Shooting, v int) { s.PenaltyAttempts = v }),
	floatField("xg", func(s *shooting.Shooting, v float64) { s.XG = v }),
	floatField("npxg", func(s *shooting.Shooting, v float64) { s.NPXG = v }),
	floatField("npxg_per_shot", func(s *shooting.Shooting, v float64) { s.NPXGPerShot = v }),
	floatField("goals_minus_xg", func(s *shooting.Shooting, v float64) { s.GoalsMinusXG = v }),
	floatField("non_penalty_goals_minus_xg", func(s *shooting.Shooting, v float64) { s.NonPenaltyGoalsMinusXG = v }),
}
