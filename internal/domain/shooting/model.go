package shooting

import (
	"fmt"
	"strings"
)

// Shooting is one player's season shooting line keyed by (ReferenceID, Season).
type Shooting struct {
	ID                      int64   `json:"-"`
	PlayerID                int64   `json:"-"`
	ReferenceID             string  `json:"reference_id,omitempty"`
	Season                  string  `json:"season"`
	PlayerName              string  `json:"player_name"`
	Nation                  string  `json:"nation"`
	Position                string  `json:"position"`
	Age                     int     `json:"age"`
	Nineties                float64 `json:"nineties"`
	Goals                   int     `json:"goals"`
	Shots                   int     `json:"shots"`
	ShotsOnTarget           int     `json:"shots_on_target"`
	ShotsOnTargetPercentage float64 `json:"shots_on_target_percentage"`
	ShotsPer90              float64 `json:"shots_per90"`
	ShotsOnTargetPer90      float64 `json:"shots_on_target_per90"`
	GoalsPerShot            float64 `json:"goals_per_shot"`
	GoalsPerShotOnTarget    float64 `json:"goals_per_shot_on_target"`
	AverageShotDistance     float64 `json:"average_shot_distance"`
	FreeKicks               int     `json:"free_kicks"`
	PenaltyGoals            int     `json:"penalty_goals"`
	PenaltyAttempts         int     `json:"penalty_attempts"`
	XG                      float64 `json:"xg"`
	NPXG                    float64 `json:"npxg"`
	NPXGPerShot             float64 `json:"npxg_per_shot"`
	GoalsMinusXG            float64 `json:"goals_minus_xg"`
	NonPenaltyGoalsMinusXG  float64 `json:"non_penalty_goals_minus_xg"`
}

func (s Shooting) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("shooting player id is required")
	}
	if s.ReferenceID == "" {
		return fmt.Errorf("shooting reference id is required")
	}
	if strings.TrimSpace(s.Season) == "" {
		return fmt.Errorf("shooting season is required")
	}

	return nil
}
