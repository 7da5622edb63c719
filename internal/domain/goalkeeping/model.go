package goalkeeping

import (
	"fmt"
	"strings"
)

// Goalkeeping is one keeper's season line. It belongs to exactly one Player
// row and is keyed by (ReferenceID, Season).
type Goalkeeping struct {
	ID                    int64   `json:"-"`
	PlayerID              int64   `json:"-"`
	ReferenceID           string  `json:"reference_id,omitempty"`
	Season                string  `json:"season"`
	PlayerName            string  `json:"player_name"`
	Nation                string  `json:"nation"`
	Position              string  `json:"position"`
	Age                   int     `json:"age"`
	MatchesPlayed         int     `json:"matches_played"`
	Starts                int     `json:"starts"`
	Minutes               int     `json:"minutes"`
	Nineties              float64 `json:"nineties"`
	GoalsAgainst          int     `json:"goals_against"`
	GoalsAgainstPer90     float64 `json:"goals_against_per90"`
	ShotsOnTargetAgainst  int     `json:"shots_on_target_against"`
	Saves                 int     `json:"saves"`
	SavePercentage        float64 `json:"save_percentage"`
	Wins                  int     `json:"wins"`
	Draws                 int     `json:"draws"`
	Losses                int     `json:"losses"`
	CleanSheets           int     `json:"clean_sheets"`
	CleanSheetPercentage  float64 `json:"clean_sheet_percentage"`
	PenaltiesFaced        int     `json:"penalties_faced"`
	PenaltiesAllowed      int     `json:"penalties_allowed"`
	PenaltiesSaved        int     `json:"penalties_saved"`
	PenaltiesMissed       int     `json:"penalties_missed"`
	PenaltySavePercentage float64 `json:"penalty_save_percentage"`
}

func (g Goalkeeping) Validate() error {
	if g.PlayerID <= 0 {
		return fmt.Errorf("goalkeeping player id is required")
	}
	if g.ReferenceID == "" {
		return fmt.Errorf("goalkeeping reference id is required")
	}
	if strings.TrimSpace(g.Season) == "" {
		return fmt.Errorf("goalkeeping season is required")
	}

	return nil
}
