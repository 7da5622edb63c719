package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
	qb "github.com/riskibarqy/fbref-crawler/internal/platform/querybuilder"
)

var (
	leagueSelectColumns = selectColumns(leagueInsertModel{})
	clubSelectColumns   = selectColumns(clubInsertModel{})
)

type LeagueRepository struct {
	db sqlx.ExtContext
}

func NewLeagueRepository(db sqlx.ExtContext) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) FindByNameAndNation(ctx context.Context, name, nation string) (league.League, bool, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(
			qb.EqFold("name", strings.TrimSpace(name)),
			qb.EqFold("nation", strings.TrimSpace(nation)),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build find league query: %w", err)
	}

	return r.get(ctx, query, args)
}

func (r *LeagueRepository) FindByName(ctx context.Context, name string) (league.League, bool, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(qb.EqFold("name", strings.TrimSpace(name))).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build find league by name query: %w", err)
	}

	return r.get(ctx, query, args)
}

func (r *LeagueRepository) get(ctx context.Context, query string, args []any) (league.League, bool, error) {
	var row leagueTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return row.toDomain(), true, nil
}

// Create inserts under a savepoint: a unique violation is rolled back to the
// savepoint and leaves the surrounding import transaction usable.
func (r *LeagueRepository) Create(ctx context.Context, item league.League) (league.League, error) {
	if err := item.Validate(); err != nil {
		return league.League{}, err
	}

	query, args, err := qb.InsertModel("leagues", leagueInsertModel{
		Name:      strings.TrimSpace(item.Name),
		Nation:    strings.TrimSpace(item.Nation),
		IsDefault: item.IsDefault,
	}).Returning("id").ToSQL()
	if err != nil {
		return league.League{}, fmt.Errorf("build insert league query: %w", err)
	}

	var id int64
	err = withSavepoint(ctx, r.db, "league_create", func() error {
		if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
			return fmt.Errorf("insert league %q: %w", item.Name, err)
		}
		return nil
	})
	if err != nil {
		return league.League{}, err
	}

	item.ID = id
	return item, nil
}

type ClubRepository struct {
	db sqlx.ExtContext
}

func NewClubRepository(db sqlx.ExtContext) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) ListByNameAndNation(ctx context.Context, name, nation string) ([]club.Club, error) {
	query, args, err := qb.Select(clubSelectColumns...).From("clubs").
		Where(
			qb.EqFold("name", strings.TrimSpace(name)),
			qb.EqFold("nation", strings.TrimSpace(nation)),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Create inserts under a savepoint like LeagueRepository.Create.
func (r *ClubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	if err := item.Validate(); err != nil {
		return club.Club{}, err
	}

	query, args, err := qb.InsertModel("clubs", clubInsertModel{
		Name:     strings.TrimSpace(item.Name),
		Nation:   strings.TrimSpace(item.Nation),
		LeagueID: item.LeagueID,
	}).Returning("id").ToSQL()
	if err != nil {
		return club.Club{}, fmt.Errorf("build insert club query: %w", err)
	}

	err = withSavepoint(ctx, r.db, "club_create", func() error {
		if err := sqlx.GetContext(ctx, r.db, &item.ID, query, args...); err != nil {
			return fmt.Errorf("insert club %q: %w", item.Name, err)
		}
		return nil
	})
	if err != nil {
		return club.Club{}, err
	}
	return item, nil
}

func (r *ClubRepository) UpdateLeague(ctx context.Context, clubID, leagueID int64) error {
	query, args, err := qb.Update("clubs").
		Set("league_id", leagueID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", clubID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update club league query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update club %d league: %w", clubID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("club %d not found", clubID)
	}
	return nil
}
