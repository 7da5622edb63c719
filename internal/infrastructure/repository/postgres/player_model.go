package postgres

import (
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
)

type playerInsertModel struct {
	ClubID                      int64   `db:"club_id"`
	ReferenceID                 string  `db:"reference_id"`
	FbrefID                     string  `db:"fbref_id"`
	Name                        string  `db:"name"`
	Nation                      string  `db:"nation"`
	Position                    string  `db:"position"`
	Age                         int     `db:"age"`
	Season                      string  `db:"season"`
	MatchesPlayed               int     `db:"matches_played"`
	Starts                      int     `db:"starts"`
	Minutes                     int     `db:"minutes"`
	Nineties                    float64 `db:"nineties"`
	Goals                       int     `db:"goals"`
	Assists                     int     `db:"assists"`
	GoalsAssists                int     `db:"goals_assists"`
	NonPenaltyGoals             int     `db:"non_penalty_goals"`
	PenaltyGoals                int     `db:"penalty_goals"`
	PenaltyAttempts             int     `db:"penalty_attempts"`
	YellowCards                 int     `db:"yellow_cards"`
	RedCards                    int     `db:"red_cards"`
	XG                          float64 `db:"xg"`
	NPXG                        float64 `db:"npxg"`
	XAG                         float64 `db:"xag"`
	NPXGXAG                     float64 `db:"npxg_xag"`
	ProgressiveCarries          int     `db:"progressive_carries"`
	ProgressivePasses           int     `db:"progressive_passes"`
	ProgressiveReceives         int     `db:"progressive_receives"`
	GoalsPer90                  float64 `db:"goals_per90"`
	AssistsPer90                float64 `db:"assists_per90"`
	GoalsAssistsPer90           float64 `db:"goals_assists_per90"`
	NonPenaltyGoalsPer90        float64 `db:"non_penalty_goals_per90"`
	GoalsAssistsNonPenaltyPer90 float64 `db:"goals_assists_non_penalty_per90"`
	XGPer90                     float64 `db:"xg_per90"`
	XAGPer90                    float64 `db:"xag_per90"`
	XGXAGPer90                  float64 `db:"xg_xag_per90"`
	NPXGPer90                   float64 `db:"npxg_per90"`
	NPXGXAGPer90                float64 `db:"npxg_xag_per90"`
}

type playerTableModel struct {
	ID int64 `db:"id"`
	playerInsertModel
}

func newPlayerInsertModel(p player.Player) playerInsertModel {
	return playerInsertModel{
		ClubID:                      p.ClubID,
		ReferenceID:                 p.ReferenceID,
		FbrefID:                     p.FbrefID,
		Name:                        p.Name,
		Nation:                      p.Nation,
		Position:                    p.Position,
		Age:                         p.Age,
		Season:                      p.Season,
		MatchesPlayed:               p.MatchesPlayed,
		Starts:                      p.Starts,
		Minutes:                     p.Minutes,
		Nineties:                    p.Nineties,
		Goals:                       p.Goals,
		Assists:                     p.Assists,
		GoalsAssists:                p.GoalsAssists,
		NonPenaltyGoals:             p.NonPenaltyGoals,
		PenaltyGoals:                p.PenaltyGoals,
		PenaltyAttempts:             p.PenaltyAttempts,
		YellowCards:                 p.YellowCards,
		RedCards:                    p.RedCards,
		XG:                          p.XG,
		NPXG:                        p.NPXG,
		XAG:                         p.XAG,
		NPXGXAG:                     p.NPXGXAG,
		ProgressiveCarries:          p.ProgressiveCarries,
		ProgressivePasses:           p.ProgressivePasses,
		ProgressiveReceives:         p.ProgressiveReceives,
		GoalsPer90:                  p.GoalsPer90,
		AssistsPer90:                p.AssistsPer90,
		GoalsAssistsPer90:           p.GoalsAssistsPer90,
		NonPenaltyGoalsPer90:        p.NonPenaltyGoalsPer90,
		GoalsAssistsNonPenaltyPer90: p.GoalsAssistsNonPenaltyPer90,
		XGPer90:                     p.XGPer90,
		XAGPer90:                    p.XAGPer90,
		XGXAGPer90:                  p.XGXAGPer90,
		NPXGPer90:                   p.NPXGPer90,
		NPXGXAGPer90:                p.NPXGXAGPer90,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		ClubID:      m.ClubID,
		ReferenceID: m.ReferenceID,
		FbrefID:     m.FbrefID,
		Name:        m.Name,
		Nation:      m.Nation,
		Position:    m.Position,
		Age:         m.Age,
		Season:      m.Season,
		Stats: player.Stats{
			MatchesPlayed:               m.MatchesPlayed,
			Starts:                      m.Starts,
			Minutes:                     m.Minutes,
			Nineties:                    m.Nineties,
			Goals:                       m.Goals,
			Assists:                     m.Assists,
			GoalsAssists:                m.GoalsAssists,
			NonPenaltyGoals:             m.NonPenaltyGoals,
			PenaltyGoals:                m.PenaltyGoals,
			PenaltyAttempts:             m.PenaltyAttempts,
			YellowCards:                 m.YellowCards,
			RedCards:                    m.RedCards,
			XG:                          m.XG,
			NPXG:                        m.NPXG,
			XAG:                         m.XAG,
			NPXGXAG:                     m.NPXGXAG,
			ProgressiveCarries:          m.ProgressiveCarries,
			ProgressivePasses:           m.ProgressivePasses,
			ProgressiveReceives:         m.ProgressiveReceives,
			GoalsPer90:                  m.GoalsPer90,
			AssistsPer90:                m.AssistsPer90,
			GoalsAssistsPer90:           m.GoalsAssistsPer90,
			NonPenaltyGoalsPer90:        m.NonPenaltyGoalsPer90,
			GoalsAssistsNonPenaltyPer90: m.GoalsAssistsNonPenaltyPer90,
			XGPer90:                     m.XGPer90,
			XAGPer90:                    m.XAGPer90,
			XGXAGPer90:                  m.XGXAGPer90,
			NPXGPer90:                   m.NPXGPer90,
			NPXGXAGPer90:                m.NPXGXAGPer90,
		},
	}
}

type detailsInsertModel struct {
	PlayerID    int64  `db:"player_id"`
	ReferenceID string `db:"reference_id"`
	Name        string `db:"name"`
	FullName    string `db:"full_name"`
	Born        string `db:"born"`
	Citizenship string `db:"citizenship"`
	Position    string `db:"position"`
	Club        string `db:"club"`
}

type detailsTableModel struct {
	ID int64 `db:"id"`
	detailsInsertModel
}

func (m detailsTableModel) toDomain() player.Details {
	return player.Details{
		ID:          m.ID,
		PlayerID:    m.PlayerID,
		ReferenceID: m.ReferenceID,
		Name:        m.Name,
		FullName:    m.FullName,
		Born:        m.Born,
		Citizenship: m.Citizenship,
		Position:    m.Position,
		Club:        m.Club,
	}
}

type goalkeepingInsertModel struct {
	PlayerID              int64   `db:"player_id"`
	ReferenceID           string  `db:"reference_id"`
	Season                string  `db:"season"`
	PlayerName            string  `db:"player_name"`
	Nation                string  `db:"nation"`
	Position              string  `db:"position"`
	Age                   int     `db:"age"`
	MatchesPlayed         int     `db:"matches_played"`
	Starts                int     `db:"starts"`
	Minutes               int     `db:"minutes"`
	Nineties              float64 `db:"nineties"`
	GoalsAgainst          int     `db:"goals_against"`
	GoalsAgainstPer90     float64 `db:"goals_against_per90"`
	ShotsOnTargetAgainst  int     `db:"shots_on_target_against"`
	Saves                 int     `db:"saves"`
	SavePercentage        float64 `db:"save_percentage"`
	Wins                  int     `db:"wins"`
	Draws                 int     `db:"draws"`
	Losses                int     `db:"losses"`
	CleanSheets           int     `db:"clean_sheets"`
	CleanSheetPercentage  float64 `db:"clean_sheet_percentage"`
	PenaltiesFaced        int     `db:"penalties_faced"`
	PenaltiesAllowed      int     `db:"penalties_allowed"`
	PenaltiesSaved        int     `db:"penalties_saved"`
	PenaltiesMissed       int     `db:"penalties_missed"`
	PenaltySavePercentage float64 `db:"penalty_save_percentage"`
}

type goalkeepingTableModel struct {
	ID int64 `db:"id"`
	goalkeepingInsertModel
}

func newGoalkeepingInsertModel(g goalkeeping.Goalkeeping) goalkeepingInsertModel {
	return goalkeepingInsertModel{
		PlayerID:              g.PlayerID,
		ReferenceID:           g.ReferenceID,
		Season:                g.Season,
		PlayerName:            g.PlayerName,
		Nation:                g.Nation,
		Position:              g.Position,
		Age:                   g.Age,
		MatchesPlayed:         g.MatchesPlayed,
		Starts:                g.Starts,
		Minutes:               g.Minutes,
		Nineties:              g.Nineties,
		GoalsAgainst:          g.GoalsAgainst,
		GoalsAgainstPer90:     g.GoalsAgainstPer90,
		ShotsOnTargetAgainst:  g.ShotsOnTargetAgainst,
		Saves:                 g.Saves,
		SavePercentage:        g.SavePercentage,
		Wins:                  g.Wins,
		Draws:                 g.Draws,
		Losses:                g.Losses,
		CleanSheets:           g.CleanSheets,
		CleanSheetPercentage:  g.CleanSheetPercentage,
		PenaltiesFaced:        g.PenaltiesFaced,
		PenaltiesAllowed:      g.PenaltiesAllowed,
		PenaltiesSaved:        g.PenaltiesSaved,
		PenaltiesMissed:       g.PenaltiesMissed,
		PenaltySavePercentage: g.PenaltySavePercentage,
	}
}

func (m goalkeepingTableModel) toDomain() goalkeeping.Goalkeeping {
	return goalkeeping.Goalkeeping{
		ID:                    m.ID,
		PlayerID:              m.PlayerID,
		ReferenceID:           m.ReferenceID,
		Season:                m.Season,
		PlayerName:            m.PlayerName,
		Nation:                m.Nation,
		Position:              m.Position,
		Age:                   m.Age,
		MatchesPlayed:         m.MatchesPlayed,
		Starts:                m.Starts,
		Minutes:               m.Minutes,
		Nineties:              m.Nineties,
		GoalsAgainst:          m.GoalsAgainst,
		GoalsAgainstPer90:     m.GoalsAgainstPer90,
		ShotsOnTargetAgainst:  m.ShotsOnTargetAgainst,
		Saves:                 m.Saves,
		SavePercentage:        m.SavePercentage,
		Wins:                  m.Wins,
		Draws:                 m.Draws,
		Losses:                m.Losses,
		CleanSheets:           m.CleanSheets,
		CleanSheetPercentage:  m.CleanSheetPercentage,
		PenaltiesFaced:        m.PenaltiesFaced,
		PenaltiesAllowed:      m.PenaltiesAllowed,
		PenaltiesSaved:        m.PenaltiesSaved,
		PenaltiesMissed:       m.PenaltiesMissed,
		PenaltySavePercentage: m.PenaltySavePercentage,
	}
}

type shootingInsertModel struct {
	PlayerID                int64   `db:"player_id"`
	ReferenceID             string  `db:"reference_id"`
	Season                  string  `db:"season"`
	PlayerName              string  `db:"player_name"`
	Nation                  string  `db:"nation"`
	Position                string  `db:"position"`
	Age                     int     `db:"age"`
	Nineties                float64 `db:"nineties"`
	Goals                   int     `db:"goals"`
	Shots                   int     `db:"shots"`
	ShotsOnTarget           int     `db:"shots_on_target"`
	ShotsOnTargetPercentage float64 `db:"shots_on_target_percentage"`
	ShotsPer90              float64 `db:"shots_per90"`
	ShotsOnTargetPer90      float64 `db:"shots_on_target_per90"`
	GoalsPerShot            float64 `db:"goals_per_shot"`
	GoalsPerShotOnTarget    float64 `db:"goals_per_shot_on_target"`
	AverageShotDistance     float64 `db:"average_shot_distance"`
	FreeKicks               int     `db:"free_kicks"`
	PenaltyGoals            int     `db:"penalty_goals"`
	PenaltyAttempts         int     `db:"penalty_attempts"`
	XG                      float64 `db:"xg"`
	NPXG                    float64 `db:"npxg"`
	NPXGPerShot             float64 `db:"npxg_per_shot"`
	GoalsMinusXG            float64 `db:"goals_minus_xg"`
	NonPenaltyGoalsMinusXG  float64 `db:"non_penalty_goals_minus_xg"`
}

type shootingTableModel struct {
	ID int64 `db:"id"`
	shootingInsertModel
}

func newShootingInsertModel(s shooting.Shooting) shootingInsertModel {
	return shootingInsertModel{
		PlayerID:                s.PlayerID,
		ReferenceID:             s.ReferenceID,
		Season:                  s.Season,
		PlayerName:              s.PlayerName,
		Nation:                  s.Nation,
		Position:                s.Position,
		Age:                     s.Age,
		Nineties:                s.Nineties,
		Goals:                   s.Goals,
		Shots:                   s.Shots,
		ShotsOnTarget:           s.ShotsOnTarget,
		ShotsOnTargetPercentage: s.ShotsOnTargetPercentage,
		ShotsPer90:              s.ShotsPer90,
		ShotsOnTargetPer90:      s.ShotsOnTargetPer90,
		GoalsPerShot:            s.GoalsPerShot,
		GoalsPerShotOnTarget:    s.GoalsPerShotOnTarget,
		AverageShotDistance:     s.AverageShotDistance,
		FreeKicks:               s.FreeKicks,
		PenaltyGoals:            s.PenaltyGoals,
		PenaltyAttempts:         s.PenaltyAttempts,
		XG:                      s.XG,
		NPXG:                    s.NPXG,
		NPXGPerShot:             s.NPXGPerShot,
		GoalsMinusXG:            s.GoalsMinusXG,
		NonPenaltyGoalsMinusXG:  s.NonPenaltyGoalsMinusXG,
	}
}

func (m shootingTableModel) toDomain() shooting.Shooting {
	return shooting.Shooting{
		ID:                      m.ID,
		PlayerID:                m.PlayerID,
		ReferenceID:             m.ReferenceID,
		Season:                  m.Season,
		PlayerName:              m.PlayerName,
		Nation:                  m.Nation,
		Position:                m.Position,
		Age:                     m.Age,
		Nineties:                m.Nineties,
		Goals:                   m.Goals,
		Shots:                   m.Shots,
		ShotsOnTarget:           m.ShotsOnTarget,
		ShotsOnTargetPercentage: m.ShotsOnTargetPercentage,
		ShotsPer90:              m.ShotsPer90,
		ShotsOnTargetPer90:      m.ShotsOnTargetPer90,
		GoalsPerShot:            m.GoalsPerShot,
		GoalsPerShotOnTarget:    m.GoalsPerShotOnTarget,
		AverageShotDistance:     m.AverageShotDistance,
		FreeKicks:               m.FreeKicks,
		PenaltyGoals:            m.PenaltyGoals,
		PenaltyAttempts:         m.PenaltyAttempts,
		XG:                      m.XG,
		NPXG:                    m.NPXG,
		NPXGPerShot:             m.NPXGPerShot,
		GoalsMinusXG:            m.GoalsMinusXG,
		NonPenaltyGoalsMinusXG:  m.NonPenaltyGoalsMinusXG,
	}
}
