package httpapi

import (
	"slices"

	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

type extractRequest struct {
	URL      string `json:"url" validate:"required,url"`
	Selector string `json:"selector" validate:"omitempty,max=200"`
}

type importBatchRequest struct {
	DataType string           `json:"data_type" validate:"required,oneof=players goalkeeping shooting playerDetails player_details"`
	Club     string           `json:"club" validate:"required,max=200"`
	League   string           `json:"league" validate:"max=200"`
	Nation   string           `json:"nation" validate:"max=100"`
	Season   string           `json:"season" validate:"omitempty,len=9"`
	Records  []map[string]any `json:"records" validate:"required,min=1"`
}

type catalogDTO struct {
	Version string             `json:"version"`
	Leagues []catalogLeagueDTO `json:"leagues"`
}

type catalogLeagueDTO struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Nation   string   `json:"nation"`
	Seasons  []string `json:"seasons"`
	Teams    int      `json:"teams"`
	Profiles int      `json:"profiles"`
}

type crawlResultDTO struct {
	usecase.CrawlResult
	Pages  int `json:"pages"`
	Failed int `json:"failed"`
}

func catalogLeagueToDTO(key string, lc crawl.LeagueCatalog) catalogLeagueDTO {
	seasons := make([]string, 0, 1)
	for _, entry := range lc.Entries {
		if !slices.Contains(seasons, entry.Season) {
			seasons = append(seasons, entry.Season)
		}
	}
	slices.Sort(seasons)

	return catalogLeagueDTO{
		Key:      key,
		Name:     lc.Name,
		Nation:   lc.Nation,
		Seasons:  seasons,
		Teams:    len(lc.Entries),
		Profiles: len(lc.Profiles),
	}
}

func crawlResultToDTO(result usecase.CrawlResult) crawlResultDTO {
	return crawlResultDTO{
		CrawlResult: result,
		Pages:       len(result.Statuses),
		Failed:      result.Failed(),
	}
}
