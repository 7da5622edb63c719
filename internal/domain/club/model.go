package club

import (
	"fmt"
	"strings"
)

// Club is a football club. Its league is the one the latest import filed it
// under.
type Club struct {
	ID       int64
	Name     string
	Nation   string
	LeagueID int64
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("club name is required")
	}
	if c.LeagueID <= 0 {
		return fmt.Errorf("club league id is required")
	}

	return nil
}

// SquadStats is one row of a league's squad standard stats table.
type SquadStats struct {
	Squad                       string  `json:"squad"`
	PlayersUsed                 int     `json:"players_used"`
	AverageAge                  float64 `json:"average_age"`
	Possession                  float64 `json:"possession"`
	MatchesPlayed               int     `json:"matches_played"`
	Starts                      int     `json:"starts"`
	Minutes                     int     `json:"minutes"`
	Nineties                    float64 `json:"nineties"`
	Goals                       int     `json:"goals"`
	Assists                     int     `json:"assists"`
	GoalsAssists                int     `json:"goals_assists"`
	NonPenaltyGoals             int     `json:"non_penalty_goals"`
	PenaltyGoals                int     `json:"penalty_goals"`
	PenaltyAttempts             int     `json:"penalty_attempts"`
	YellowCards                 int     `json:"yellow_cards"`
	RedCards                    int     `json:"red_cards"`
	XG                          float64 `json:"xg"`
	NPXG                        float64 `json:"npxg"`
	XAG                         float64 `json:"xag"`
	NPXGXAG                     float64 `json:"npxg_xag"`
	ProgressiveCarries          int     `json:"progressive_carries"`
	ProgressivePasses           int     `json:"progressive_passes"`
	GoalsPer90                  float64 `json:"goals_per90"`
	AssistsPer90                float64 `json:"assists_per90"`
	GoalsAssistsPer90           float64 `json:"goals_assists_per90"`
	NonPenaltyGoalsPer90        float64 `json:"non_penalty_goals_per90"`
	GoalsAssistsNonPenaltyPer90 float64 `json:"goals_assists_non_penalty_per90"`
	XGPer90                     float64 `json:"xg_per90"`
	XAGPer90                    float64 `json:"xag_per90"`
	XGXAGPer90                  float64 `json:"xg_xag_per90"`
	NPXGPer90                   float64 `json:"npxg_per90"`
	NPXGXAGPer90                float64 `json:"npxg_xag_per90"`
}
