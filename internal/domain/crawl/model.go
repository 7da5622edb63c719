package crawl

import "net/http"

// DataType names one kind of importable batch.
type DataType string

const (
	DataTypePlayers       DataType = "players"
	DataTypeGoalkeeping   DataType = "goalkeeping"
	DataTypeShooting      DataType = "shooting"
	DataTypePlayerDetails DataType = "playerDetails"
	DataTypeMatchLogs     DataType = "matchlogs"
)

var ImportableDataTypes = map[DataType]struct{}{
	DataTypePlayers:       {},
	DataTypeGoalkeeping:   {},
	DataTypeShooting:      {},
	DataTypePlayerDetails: {},
}

func (d DataType) Importable() bool {
	_, ok := ImportableDataTypes[d]
	return ok
}

// ParseDataType accepts the canonical names plus the snake_case spelling of
// playerDetails used in snapshot file names.
func ParseDataType(v string) (DataType, bool) {
	switch v {
	case "players", "goalkeeping", "shooting", "matchlogs":
		return DataType(v), true
	case "playerDetails", "player_details", "playerdetails":
		return DataTypePlayerDetails, true
	default:
		return "", false
	}
}

// Status reports one crawled page. It is returned to the caller and never
// persisted.
type Status struct {
	Label      string          `json:"label"`
	URL        string          `json:"url"`
	StatusCode int             `json:"statusCode"`
	StatusText string          `json:"statusText"`
	Season     string          `json:"season"`
	Imports    []ImportOutcome `json:"imports,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Succeeded reports a 2xx fetch with no recorded entry error.
func (s Status) Succeeded() bool {
	return s.StatusCode >= http.StatusOK && s.StatusCode < http.StatusMultipleChoices && s.Error == ""
}

// ImportOutcome is the reconciler's verdict for one data type of one page.
type ImportOutcome struct {
	DataType DataType `json:"dataType"`
	Success  bool     `json:"success"`
	Saved    int      `json:"saved"`
	Message  string   `json:"message,omitempty"`
	Snapshot string   `json:"snapshot,omitempty"`
}
