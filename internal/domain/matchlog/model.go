// Package matchlog holds a team's scores and fixtures rows. Match logs are
// snapshotted to disk but never imported.
package matchlog

type MatchLog struct {
	Team              string  `json:"team"`
	Season            string  `json:"season"`
	Date              string  `json:"date"`
	Time              string  `json:"time"`
	Competition       string  `json:"competition"`
	Round             string  `json:"round"`
	Day               string  `json:"day"`
	Venue             string  `json:"venue"`
	Result            string  `json:"result"`
	GoalsFor          int     `json:"goals_for"`
	GoalsAgainst      int     `json:"goals_against"`
	Opponent          string  `json:"opponent"`
	XG                float64 `json:"xg"`
	XGA               float64 `json:"xga"`
	Possession        float64 `json:"possession"`
	Attendance        int     `json:"attendance"`
	Captain           string  `json:"captain"`
	Formation         string  `json:"formation"`
	OpponentFormation string  `json:"opponent_formation"`
	Referee           string  `json:"referee"`
}

// Played reports whether the fixture has a result yet.
func (m MatchLog) Played() bool {
	return m.Result != ""
}
