package fbref

import (
	"strings"

	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/matchlog"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	"github.com/riskibarqy/fbref-crawler/internal/platform/htmltable"
)

// Column layouts of fbref's squad pages. A layout change on the site is a
// one-line edit here; the parser tests build their fixtures from the same
// tables.

type (
	playerColumn      = htmltable.Column[player.Player]
	goalkeepingColumn = htmltable.Column[goalkeeping.Goalkeeping]
	shootingColumn    = htmltable.Column[shooting.Shooting]
	matchLogColumn    = htmltable.Column[matchlog.MatchLog]
	squadColumn       = htmltable.Column[club.SquadStats]
)

var PlayerSchema = htmltable.Schema[player.Player]{
	Kind:        "players",
	MinCells:    33,
	HeaderLabel: "Player",
	Columns: []playerColumn{
		{Field: "player_name", Index: 0, Set: func(p *player.Player, c htmltable.Cell) {
			p.Name = c.Text()
			p.FbrefID = playerIDFromHref(c.Href())
		}},
		{Field: "nation", Index: 1, Set: func(p *player.Player, c htmltable.Cell) { p.Nation = nationCode(c.Text()) }},
		{Field: "position", Index: 2, Set: func(p *player.Player, c htmltable.Cell) { p.Position = c.Text() }},
		{Field: "age", Index: 3, Set: func(p *player.Player, c htmltable.Cell) { p.Age = htmltable.ParseAge(c.Text()) }},
		{Field: "matches_played", Index: 4, Set: func(p *player.Player, c htmltable.Cell) { p.MatchesPlayed = c.Int() }},
		{Field: "starts", Index: 5, Set: func(p *player.Player, c htmltable.Cell) { p.Starts = c.Int() }},
		{Field: "minutes", Index: 6, Set: func(p *player.Player, c htmltable.Cell) { p.Minutes = c.Int() }},
		{Field: "nineties", Index: 7, Set: func(p *player.Player, c htmltable.Cell) { p.Nineties = c.Float() }},
		{Field: "goals", Index: 8, Set: func(p *player.Player, c htmltable.Cell) { p.Goals = c.Int() }},
		{Field: "assists", Index: 9, Set: func(p *player.Player, c htmltable.Cell) { p.Assists = c.Int() }},
		{Field: "goals_assists", Index: 10, Set: func(p *player.Player, c htmltable.Cell) { p.GoalsAssists = c.Int() }},
		{Field: "non_penalty_goals", Index: 11, Set: func(p *player.Player, c htmltable.Cell) { p.NonPenaltyGoals = c.Int() }},
		{Field: "penalty_goals", Index: 12, Set: func(p *player.Player, c htmltable.Cell) { p.PenaltyGoals = c.Int() }},
		{Field: "penalty_attempts", Index: 13, Set: func(p *player.Player, c htmltable.Cell) { p.PenaltyAttempts = c.Int() }},
		{Field: "yellow_cards", Index: 14, Set: func(p *player.Player, c htmltable.Cell) { p.YellowCards = c.Int() }},
		{Field: "red_cards", Index: 15, Set: func(p *player.Player, c htmltable.Cell) { p.RedCards = c.Int() }},
		{Field: "xg", Index: 16, Set: func(p *player.Player, c htmltable.Cell) { p.XG = c.Float() }},
		{Field: "npxg", Index: 17, Set: func(p *player.Player, c htmltable.Cell) { p.NPXG = c.Float() }},
		{Field: "xag", Index: 18, Set: func(p *player.Player, c htmltable.Cell) { p.XAG = c.Float() }},
		{Field: "npxg_xag", Index: 19, Set: func(p *player.Player, c htmltable.Cell) { p.NPXGXAG = c.Float() }},
		{Field: "progressive_carries", Index: 20, Set: func(p *player.Player, c htmltable.Cell) { p.ProgressiveCarries = c.Int() }},
		{Field: "progressive_passes", Index: 21, Set: func(p *player.Player, c htmltable.Cell) { p.ProgressivePasses = c.Int() }},
		{Field: "progressive_receives", Index: 22, Set: func(p *player.Player, c htmltable.Cell) { p.ProgressiveReceives = c.Int() }},
		{Field: "goals_per90", Index: 23, Set: func(p *player.Player, c htmltable.Cell) { p.GoalsPer90 = c.Float() }},
		{Field: "assists_per90", Index: 24, Set: func(p *player.Player, c htmltable.Cell) { p.AssistsPer90 = c.Float() }},
		{Field: "goals_assists_per90", Index: 25, Set: func(p *player.Player, c htmltable.Cell) { p.GoalsAssistsPer90 = c.Float() }},
		{Field: "non_penalty_goals_per90", Index: 26, Set: func(p *player.Player, c htmltable.Cell) { p.NonPenaltyGoalsPer90 = c.Float() }},
		{Field: "goals_assists_non_penalty_per90", Index: 27, Set: func(p *player.Player, c htmltable.Cell) { p.GoalsAssistsNonPenaltyPer90 = c.Float() }},
		{Field: "xg_per90", Index: 28, Set: func(p *player.Player, c htmltable.Cell) { p.XGPer90 = c.Float() }},
		{Field: "xag_per90", Index: 29, Set: func(p *player.Player, c htmltable.Cell) { p.XAGPer90 = c.Float() }},
		{Field: "xg_xag_per90", Index: 30, Set: func(p *player.Player, c htmltable.Cell) { p.XGXAGPer90 = c.Float() }},
		{Field: "npxg_per90", Index: 31, Set: func(p *player.Player, c htmltable.Cell) { p.NPXGPer90 = c.Float() }},
		{Field: "npxg_xag_per90", Index: 32, Set: func(p *player.Player, c htmltable.Cell) { p.NPXGXAGPer90 = c.Float() }},
	},
}

var GoalkeepingSchema = htmltable.Schema[goalkeeping.Goalkeeping]{
	Kind:        "goalkeeping",
	MinCells:    5,
	HeaderLabel: "Player",
	Columns: []goalkeepingColumn{
		{Field: "player_name", Index: 0, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.PlayerName = c.Text() }},
		{Field: "nation", Index: 1, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Nation = nationCode(c.Text()) }},
		{Field: "position", Index: 2, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Position = c.Text() }},
		{Field: "age", Index: 3, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Age = htmltable.ParseAge(c.Text()) }},
		{Field: "matches_played", Index: 4, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.MatchesPlayed = c.Int() }},
		{Field: "starts", Index: 5, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Starts = c.Int() }},
		{Field: "minutes", Index: 6, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Minutes = c.Int() }},
		{Field: "nineties", Index: 7, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Nineties = c.Float() }},
		{Field: "goals_against", Index: 8, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.GoalsAgainst = c.Int() }},
		{Field: "goals_against_per90", Index: 9, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.GoalsAgainstPer90 = c.Float() }},
		{Field: "shots_on_target_against", Index: 10, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.ShotsOnTargetAgainst = c.Int() }},
		{Field: "saves", Index: 11, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Saves = c.Int() }},
		{Field: "save_percentage", Index: 12, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.SavePercentage = c.Float() }},
		{Field: "wins", Index: 13, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Wins = c.Int() }},
		{Field: "draws", Index: 14, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Draws = c.Int() }},
		{Field: "losses", Index: 15, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.Losses = c.Int() }},
		{Field: "clean_sheets", Index: 16, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.CleanSheets = c.Int() }},
		{Field: "clean_sheet_percentage", Index: 17, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.CleanSheetPercentage = c.Float() }},
		{Field: "penalties_faced", Index: 18, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.PenaltiesFaced = c.Int() }},
		{Field: "penalties_allowed", Index: 19, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.PenaltiesAllowed = c.Int() }},
		{Field: "penalties_saved", Index: 20, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.PenaltiesSaved = c.Int() }},
		{Field: "penalties_missed", Index: 21, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.PenaltiesMissed = c.Int() }},
		{Field: "penalty_save_percentage", Index: 22, Set: func(g *goalkeeping.Goalkeeping, c htmltable.Cell) { g.PenaltySavePercentage = c.Float() }},
	},
}

var ShootingSchema = htmltable.Schema[shooting.Shooting]{
	Kind:        "shooting",
	MinCells:    5,
	HeaderLabel: "Player",
	Columns: []shootingColumn{
		{Field: "player_name", Index: 0, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.PlayerName = c.Text() }},
		{Field: "nation", Index: 1, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.Nation = nationCode(c.Text()) }},
		{Field: "position", Index: 2, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.Position = c.Text() }},
		{Field: "age", Index: 3, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.Age = htmltable.ParseAge(c.Text()) }},
		{Field: "nineties", Index: 4, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.Nineties = c.Float() }},
		{Field: "goals", Index: 5, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.Goals = c.Int() }},
		{Field: "shots", Index: 6, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.Shots = c.Int() }},
		{Field: "shots_on_target", Index: 7, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.ShotsOnTarget = c.Int() }},
		{Field: "shots_on_target_percentage", Index: 8, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.ShotsOnTargetPercentage = c.Float() }},
		{Field: "shots_per90", Index: 9, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.ShotsPer90 = c.Float() }},
		{Field: "shots_on_target_per90", Index: 10, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.ShotsOnTargetPer90 = c.Float() }},
		{Field: "goals_per_shot", Index: 11, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.GoalsPerShot = c.Float() }},
		{Field: "goals_per_shot_on_target", Index: 12, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.GoalsPerShotOnTarget = c.Float() }},
		{Field: "average_shot_distance", Index: 13, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.AverageShotDistance = c.Float() }},
		{Field: "free_kicks", Index: 14, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.FreeKicks = c.Int() }},
		{Field: "penalty_goals", Index: 15, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.PenaltyGoals = c.Int() }},
		{Field: "penalty_attempts", Index: 16, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.PenaltyAttempts = c.Int() }},
		{Field: "xg", Index: 17, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.XG = c.Float() }},
		{Field: "npxg", Index: 18, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.NPXG = c.Float() }},
		{Field: "npxg_per_shot", Index: 19, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.NPXGPerShot = c.Float() }},
		{Field: "goals_minus_xg", Index: 20, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.GoalsMinusXG = c.Float() }},
		{Field: "non_penalty_goals_minus_xg", Index: 21, Set: func(s *shooting.Shooting, c htmltable.Cell) { s.NonPenaltyGoalsMinusXG = c.Float() }},
	},
}

var MatchLogSchema = htmltable.Schema[matchlog.MatchLog]{
	Kind:        "matchlogs",
	MinCells:    10,
	HeaderLabel: "Date",
	Columns: []matchLogColumn{
		{Field: "date", Index: 0, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Date = c.Text() }},
		{Field: "time", Index: 1, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Time = c.Text() }},
		{Field: "competition", Index: 2, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Competition = c.Text() }},
		{Field: "round", Index: 3, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Round = c.Text() }},
		{Field: "day", Index: 4, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Day = c.Text() }},
		{Field: "venue", Index: 5, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Venue = c.Text() }},
		{Field: "result", Index: 6, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Result = c.Text() }},
		{Field: "goals_for", Index: 7, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.GoalsFor = leadingInt(c.Text()) }},
		{Field: "goals_against", Index: 8, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.GoalsAgainst = leadingInt(c.Text()) }},
		{Field: "opponent", Index: 9, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Opponent = c.Text() }},
		{Field: "xg", Index: 10, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.XG = c.Float() }},
		{Field: "xga", Index: 11, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.XGA = c.Float() }},
		{Field: "possession", Index: 12, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Possession = c.Float() }},
		{Field: "attendance", Index: 13, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Attendance = c.Int() }},
		{Field: "captain", Index: 14, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Captain = c.Text() }},
		{Field: "formation", Index: 15, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Formation = c.Text() }},
		{Field: "opponent_formation", Index: 16, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.OpponentFormation = c.Text() }},
		{Field: "referee", Index: 17, Set: func(m *matchlog.MatchLog, c htmltable.Cell) { m.Referee = c.Text() }},
	},
}

var SquadSchema = htmltable.Schema[club.SquadStats]{
	Kind:        "squads",
	MinCells:    31,
	HeaderLabel: "Squad",
	Columns: []squadColumn{
		{Field: "squad", Index: 0, Set: func(s *club.SquadStats, c htmltable.Cell) { s.Squad = c.Text() }},
		{Field: "players_used", Index: 1, Set: func(s *club.SquadStats, c htmltable.Cell) { s.PlayersUsed = c.Int() }},
		{Field: "average_age", Index: 2, Set: func(s *club.SquadStats, c htmltable.Cell) { s.AverageAge = c.Float() }},
		{Field: "possession", Index: 3, Set: func(s *club.SquadStats, c htmltable.Cell) { s.Possession = c.Float() }},
		{Field: "matches_played", Index: 4, Set: func(s *club.SquadStats, c htmltable.Cell) { s.MatchesPlayed = c.Int() }},
		{Field: "starts", Index: 5, Set: func(s *club.SquadStats, c htmltable.Cell) { s.Starts = c.Int() }},
		{Field: "minutes", Index: 6, Set: func(s *club.SquadStats, c htmltable.Cell) { s.Minutes = c.Int() }},
		{Field: "nineties", Index: 7, Set: func(s *club.SquadStats, c htmltable.Cell) { s.Nineties = c.Float() }},
		{Field: "goals", Index: 8, Set: func(s *club.SquadStats, c htmltable.Cell) { s.Goals = c.Int() }},
		{Field: "assists", Index: 9, Set: func(s *club.SquadStats, c htmltable.Cell) { s.Assists = c.Int() }},
		{Field: "goals_assists", Index: 10, Set: func(s *club.SquadStats, c htmltable.Cell) { s.GoalsAssists = c.Int() }},
		{Field: "non_penalty_goals", Index: 11, Set: func(s *club.SquadStats, c htmltable.Cell) { s.NonPenaltyGoals = c.Int() }},
		{Field: "penalty_goals", Index: 12, Set: func(s *club.SquadStats, c htmltable.Cell) { s.PenaltyGoals = c.Int() }},
		{Field: "penalty_attempts", Index: 13, Set: func(s *club.SquadStats, c htmltable.Cell) { s.PenaltyAttempts = c.Int() }},
		{Field: "yellow_cards", Index: 14, Set: func(s *club.SquadStats, c htmltable.Cell) { s.YellowCards = c.Int() }},
		{Field: "red_cards", Index: 15, Set: func(s *club.SquadStats, c htmltable.Cell) { s.RedCards = c.Int() }},
		{Field: "xg", Index: 16, Set: func(s *club.SquadStats, c htmltable.Cell) { s.XG = c.Float() }},
		{Field: "npxg", Index: 17, Set: func(s *club.SquadStats, c htmltable.Cell) { s.NPXG = c.Float() }},
		{Field: "xag", Index: 18, Set: func(s *club.SquadStats, c htmltable.Cell) { s.XAG = c.Float() }},
		{Field: "npxg_xag", Index: 19, Set: func(s *club.SquadStats, c htmltable.Cell) { s.NPXGXAG = c.Float() }},
		{Field: "progressive_carries", Index: 20, Set: func(s *club.SquadStats, c htmltable.Cell) { s.ProgressiveCarries = c.Int() }},
		{Field: "progressive_passes", Index: 21, Set: func(s *club.SquadStats, c htmltable.Cell) { s.ProgressivePasses = c.Int() }},
		{Field: "goals_per90", Index: 22, Set: func(s *club.SquadStats, c htmltable.Cell) { s.GoalsPer90 = c.Float() }},
		{Field: "assists_per90", Index: 23, Set: func(s *club.SquadStats, c htmltable.Cell) { s.AssistsPer90 = c.Float() }},
		{Field: "goals_assists_per90", Index: 24, Set: func(s *club.SquadStats, c htmltable.Cell) { s.GoalsAssistsPer90 = c.Float() }},
		{Field: "non_penalty_goals_per90", Index: 25, Set: func(s *club.SquadStats, c htmltable.Cell) { s.NonPenaltyGoalsPer90 = c.Float() }},
		{Field: "goals_assists_non_penalty_per90", Index: 26, Set: func(s *club.SquadStats, c htmltable.Cell) { s.GoalsAssistsNonPenaltyPer90 = c.Float() }},
		{Field: "xg_per90", Index: 27, Set: func(s *club.SquadStats, c htmltable.Cell) { s.XGPer90 = c.Float() }},
		{Field: "xag_per90", Index: 28, Set: func(s *club.SquadStats, c htmltable.Cell) { s.XAGPer90 = c.Float() }},
		{Field: "xg_xag_per90", Index: 29, Set: func(s *club.SquadStats, c htmltable.Cell) { s.XGXAGPer90 = c.Float() }},
		{Field: "npxg_per90", Index: 30, Set: func(s *club.SquadStats, c htmltable.Cell) { s.NPXGPer90 = c.Float() }},
		{Field: "npxg_xag_per90", Index: 31, Set: func(s *club.SquadStats, c htmltable.Cell) { s.NPXGXAGPer90 = c.Float() }},
	},
}

// playerIDFromHref reads <id> out of /en/players/<id>/<slug>.
func playerIDFromHref(href string) string {
	parts := strings.Split(strings.Trim(href, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "players" {
			return parts[i+1]
		}
	}
	return ""
}

// nationCode keeps the trailing code of cells like "eng ENG".
func nationCode(v string) string {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// leadingInt reads "2" out of scores such as "2 (4)".
func leadingInt(v string) int {
	head, _, _ := strings.Cut(strings.TrimSpace(v), " ")
	return htmltable.ParseInt(head)
}
