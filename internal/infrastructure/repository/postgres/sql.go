package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/fbref-crawler/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// selectColumns lists "id" followed by the db columns of an insert model, so
// row structs never meet a column they cannot scan.
func selectColumns(model any) []string {
	cols, _, err := qb.ModelColumns(model)
	if err != nil {
		return []string{"id"}
	}
	return append([]string{"id"}, cols...)
}

// withSavepoint runs fn under a named savepoint. When fn fails the work is
// rolled back to the savepoint, so a unique violation leaves the surrounding
// import transaction usable for a re-lookup.
func withSavepoint(ctx context.Context, db sqlx.ExecerContext, name string, fn func() error) error {
	if _, err := db.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint %s: %w", name, err)
	}
	if err := fn(); err != nil {
		if _, rbErr := db.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("%w (rollback to savepoint %s: %v)", err, name, rbErr)
		}
		return err
	}
	if _, err := db.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint %s: %w", name, err)
	}
	return nil
}
