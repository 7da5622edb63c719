package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fbref-crawler/internal/domain/club"
	"github.com/riskibarqy/fbref-crawler/internal/domain/goalkeeping"
	"github.com/riskibarqy/fbref-crawler/internal/domain/league"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/domain/shooting"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

// Store opens one database transaction per import. Isolation is whatever
// the server default is.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) BeginImport(ctx context.Context) (usecase.ImportUnit, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import tx: %w", err)
	}
	return &unit{tx: tx}, nil
}

type unit struct {
	tx *sqlx.Tx
}

func (u *unit) Leagues() league.Repository { return NewLeagueRepository(u.tx) }

func (u *unit) Clubs() club.Repository { return NewClubRepository(u.tx) }

func (u *unit) Players() player.Repository { return NewPlayerRepository(u.tx) }

func (u *unit) PlayerDetails() player.DetailsRepository { return NewDetailsRepository(u.tx) }

func (u *unit) Goalkeeping() goalkeeping.Repository { return NewGoalkeepingRepository(u.tx) }

func (u *unit) Shooting() shooting.Repository { return NewShootingRepository(u.tx) }

func (u *unit) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

func (u *unit) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback import tx: %w", err)
	}
	return nil
}
