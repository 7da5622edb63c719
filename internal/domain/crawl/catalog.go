package crawl

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog maps a league key (e.g. "premier-league") to the pages a crawl
// walks for it.
type Catalog struct {
	Version string                   `json:"version" validate:"required"`
	Leagues map[string]LeagueCatalog `json:"leagues" validate:"required,min=1,dive"`
}

type LeagueCatalog struct {
	Name     string    `json:"name" validate:"required"`
	Nation   string    `json:"nation"`
	Tables   TableIDs  `json:"tables"`
	Entries  []Entry   `json:"entries" validate:"dive"`
	Profiles []Profile `json:"profiles" validate:"dive"`
}

// TableIDs are the table-location ids of a team page, for example
// "stats_standard_9". An empty id skips that data type.
type TableIDs struct {
	Players     string `json:"players"`
	Goalkeeping string `json:"goalkeeping"`
	Shooting    string `json:"shooting"`
	MatchLogs   string `json:"matchlogs"`
}

type Entry struct {
	Team   string   `json:"team" validate:"required"`
	Season string   `json:"season" validate:"required,len=9"`
	URL    string   `json:"url" validate:"required,url"`
	Tables TableIDs `json:"tables"`
}

// Profile is an individually listed player page imported as player details.
type Profile struct {
	Team string `json:"team" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

// League returns the catalog for key.
func (c Catalog) League(key string) (LeagueCatalog, error) {
	item, ok := c.Leagues[strings.TrimSpace(key)]
	if !ok {
		return LeagueCatalog{}, fmt.Errorf("league %q is not in the catalog", key)
	}
	return item, nil
}

// Keys returns the league keys in stable order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Leagues))
	for key := range c.Leagues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
