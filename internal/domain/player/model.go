package player

import (
	"fmt"
	"strings"
)

// Player is one player's standard stats line for one club and one season.
// The same person appears once per (ReferenceID, ClubID, Season).
type Player struct {
	ID          int64  `json:"-"`
	ClubID      int64  `json:"-"`
	ReferenceID string `json:"reference_id"`
	FbrefID     string `json:"fbref_id"`
	Name        string `json:"player_name"`
	Nation      string `json:"nation"`
	Position    string `json:"position"`
	Age         int    `json:"age"`
	Season      string `json:"season"`
	Stats
}

// Stats holds the standard stats columns.
type Stats struct {
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
	ProgressiveReceives         int     `json:"progressive_receives"`
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

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.ReferenceID == "" {
		return fmt.Errorf("player reference id is required")
	}
	if p.ClubID <= 0 {
		return fmt.Errorf("player club id is required")
	}
	if !ValidSeason(p.Season) {
		return fmt.Errorf("invalid player season: %q", p.Season)
	}

	return nil
}

// ValidSeason accepts the "YYYY-YYYY" form whose lexicographic order is
// chronological.
func ValidSeason(season string) bool {
	if len(season) != 9 || season[4] != '-' {
		return false
	}
	for i, r := range season {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Details is the biographical block of a player's profile page. One row
// exists per owning Player row.
type Details struct {
	ID          int64  `json:"-"`
	PlayerID    int64  `json:"-"`
	ReferenceID string `json:"reference_id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Born        string `json:"born"`
	Citizenship string `json:"citizenship"`
	Position    string `json:"position"`
	Club        string `json:"club"`
}

func (d Details) Validate() error {
	if strings.TrimSpace(d.FullName) == "" {
		return fmt.Errorf("player details full name is required")
	}
	if d.ReferenceID == "" {
		return fmt.Errorf("player details reference id is required")
	}
	if d.PlayerID <= 0 {
		return fmt.Errorf("player details player id is required")
	}

	return nil
}
