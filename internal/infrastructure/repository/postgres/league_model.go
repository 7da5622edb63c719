package postgres

import (
	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
)

type leagueInsertModel struct {
	Name      string `db:"name"`
	Nation    string `db:"nation"`
	IsDefault bool   `db:"is_default"`
}

type leagueTableModel struct {
	ID int64 `db:"id"`
	leagueInsertModel
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:        m.ID,
		Name:      m.Name,
		Nation:    m.Nation,
		IsDefault: m.IsDefault,
	}
}

type clubInsertModel struct {
	Name     string `db:"name"`
	Nation   string `db:"nation"`
	LeagueID int64  `db:"league_id"`
}

type clubTableModel struct {
	ID int64 `db:"id"`
	clubInsertModel
}

func (m clubTableModel) toDomain() club.Club {
	return club.Club{
		ID:       m.ID,
		Name:     m.Name,
		Nation:   m.Nation,
		LeagueID: m.LeagueID,
	}
}
