package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	qb "github.com/riskibarqy/fbref-crawler/internal/platform/querybuilder"
)

var (
	playerSelectColumns      = selectColumns(playerInsertModel{})
	detailsSelectColumns     = selectColumns(detailsInsertModel{})
	goalkeepingSelectColumns = selectColumns(goalkeepingInsertModel{})
	shootingSelectColumns    = selectColumns(shootingInsertModel{})
)

type PlayerRepository struct {
	db sqlx.ExtContext
}

func NewPlayerRepository(db sqlx.ExtContext) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) (player.Player, error) {
	if err := item.Validate(); err != nil {
		return player.Player{}, err
	}

	builder, err := qb.UpsertModel("players", newPlayerInsertModel(item), "reference_id", "club_id", "season")
	if err != nil {
		return player.Player{}, fmt.Errorf("build upsert player query: %w", err)
	}
	query, args, err := builder.Returning("id").ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build upsert player query: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &item.ID, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("upsert player reference_id=%s season=%s: %w", item.ReferenceID, item.Season, err)
	}
	return item, nil
}

func (r *PlayerRepository) FindLatestByReference(ctx context.Context, referenceID string, clubID int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("reference_id", referenceID),
			qb.Eq("club_id", clubID),
		).
		OrderBy("season DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build find latest player query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("find latest player %s: %w", referenceID, err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByClubSeason(ctx context.Context, clubID int64, season string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("club_id", clubID),
			qb.Eq("season", season),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by club season query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by club season: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) CountByClubSeason(ctx context.Context, clubID int64, season string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("players").
		Where(
			qb.Eq("club_id", clubID),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}

type DetailsRepository struct {
	db sqlx.ExtContext
}

func NewDetailsRepository(db sqlx.ExtContext) *DetailsRepository {
	return &DetailsRepository{db: db}
}

func (r *DetailsRepository) Upsert(ctx context.Context, item player.Details) (player.Details, error) {
	if err := item.Validate(); err != nil {
		return player.Details{}, err
	}

	builder, err := qb.UpsertModel("player_details", detailsInsertModel{
		PlayerID:    item.PlayerID,
		ReferenceID: item.ReferenceID,
		Name:        item.Name,
		FullName:    item.FullName,
		Born:        item.Born,
		Citizenship: item.Citizenship,
		Position:    item.Position,
		Club:        item.Club,
	}, "player_id")
	if err != nil {
		return player.Details{}, fmt.Errorf("build upsert player details query: %w", err)
	}
	query, args, err := builder.Returning("id").ToSQL()
	if err != nil {
		return player.Details{}, fmt.Errorf("build upsert player details query: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &item.ID, query, args...); err != nil {
		return player.Details{}, fmt.Errorf("upsert player details player_id=%d: %w", item.PlayerID, err)
	}
	return item, nil
}

func (r *DetailsRepository) GetByPlayerID(ctx context.Context, playerID int64) (player.Details, bool, error) {
	query, args, err := qb.Select(detailsSelectColumns...).From("player_details").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Details{}, false, fmt.Errorf("build get player details query: %w", err)
	}

	var row detailsTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Details{}, false, nil
		}
		return player.Details{}, false, fmt.Errorf("get player details: %w", err)
	}
	return row.toDomain(), true, nil
}

type GoalkeepingRepository struct {
	db sqlx.ExtContext
}

func NewGoalkeepingRepository(db sqlx.ExtContext) *GoalkeepingRepository {
	return &GoalkeepingRepository{db: db}
}

func (r *GoalkeepingRepository) Upsert(ctx context.Context, item goalkeeping.Goalkeeping) (goalkeeping.Goalkeeping, error) {
	if err := item.Validate(); err != nil {
		return goalkeeping.Goalkeeping{}, err
	}

	builder, err := qb.UpsertModel("goalkeeping", newGoalkeepingInsertModel(item), "reference_id", "season")
	if err != nil {
		return goalkeeping.Goalkeeping{}, fmt.Errorf("build upsert goalkeeping query: %w", err)
	}
	query, args, err := builder.Returning("id").ToSQL()
	if err != nil {
		return goalkeeping.Goalkeeping{}, fmt.Errorf("build upsert goalkeeping query: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &item.ID, query, args...); err != nil {
		return goalkeeping.Goalkeeping{}, fmt.Errorf("upsert goalkeeping reference_id=%s season=%s: %w", item.ReferenceID, item.Season, err)
	}
	return item, nil
}

func (r *GoalkeepingRepository) ListBySeason(ctx context.Context, season string) ([]goalkeeping.Goalkeeping, error) {
	query, args, err := qb.Select(goalkeepingSelectColumns...).From("goalkeeping").
		Where(qb.Eq("season", season)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goalkeeping query: %w", err)
	}

	var rows []goalkeepingTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goalkeeping: %w", err)
	}

	out := make([]goalkeeping.Goalkeeping, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type ShootingRepository struct {
	db sqlx.ExtContext
}

func NewShootingRepository(db sqlx.ExtContext) *ShootingRepository {
	return &ShootingRepository{db: db}
}

func (r *ShootingRepository) Upsert(ctx context.Context, item shooting.Shooting) (shooting.Shooting, error) {
	if err := item.Validate(); err != nil {
		return shooting.Shooting{}, err
	}

	builder, err := qb.UpsertModel("shooting", newShootingInsertModel(item), "reference_id", "season")
	if err != nil {
		return shooting.Shooting{}, fmt.Errorf("build upsert shooting query: %w", err)
	}
	query, args, err := builder.Returning("id").ToSQL()
	if err != nil {
		return shooting.Shooting{}, fmt.Errorf("build upsert shooting query: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &item.ID, query, args...); err != nil {
		return shooting.Shooting{}, fmt.Errorf("upsert shooting reference_id=%s season=%s: %w", item.ReferenceID, item.Season, err)
	}
	return item, nil
}

func (r *ShootingRepository) ListBySeason(ctx context.Context, season string) ([]shooting.Shooting, error) {
	query, args, err := qb.Select(shootingSelectColumns...).From("shooting").
		Where(qb.Eq("season", season)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select shooting query: %w", err)
	}

	var rows []shootingTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select shooting: %w", err)
	}

	out := make([]shooting.Shooting, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
