package querybuilder

import (
	"errors"
	"strings"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("clubs").
		Where(EqFold("name", "Arsenal"), EqFold("nation", "England")).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM clubs WHERE LOWER(name) = LOWER($1) AND LOWER(nation) = LOWER($2) ORDER BY id LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Arsenal" || args[1] != "England" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_BindsInOrder(t *testing.T) {
	query, args, err := Select("COUNT(1)").
		From("players").
		Where(Eq("club_id", int64(7))).
		Where(Eq("season", "2023-2024")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT COUNT(1) FROM players WHERE club_id = $1 AND season = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != "2023-2024" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_Validation(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); !errors.Is(err, errNoTable) {
		t.Fatalf("expected missing table error, got %v", err)
	}
	if _, _, err := Select().From("clubs").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("leagues").
		Columns("name", "nation").
		Values("Premier League", "England").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO leagues (name, nation) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Premier League" || args[1] != "England" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	if _, _, err := InsertInto("leagues").Columns("name", "nation").Values("x").ToSQL(); err == nil {
		t.Fatalf("expected error on value count mismatch")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("clubs").
		Set("league_id", int64(2)).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE clubs SET league_id = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(2) || args[1] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := Update("clubs").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
}

type shootingRow struct {
	ReferenceID string  `db:"reference_id"`
	Season      string  `db:"season"`
	PlayerID    int64   `db:"player_id"`
	Goals       int     `db:"goals"`
	XG          float64 `db:"xg"`
	internal    string
	Ignored     string `db:"-"`
}

func TestUpsertModel(t *testing.T) {
	row := shootingRow{ReferenceID: "42", Season: "2024-2025", PlayerID: 3, Goals: 5, XG: 4.2, internal: "x"}

	builder, err := UpsertModel("shooting", row, "reference_id", "season")
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}
	query, args, err := builder.Returning("id").ToSQL()
	if err != nil {
		t.Fatalf("render upsert: %v", err)
	}

	wantQuery := "INSERT INTO shooting (reference_id, season, player_id, goals, xg) VALUES ($1, $2, $3, $4, $5) " +
		"ON CONFLICT (reference_id, season) DO UPDATE SET player_id = EXCLUDED.player_id, goals = EXCLUDED.goals, " +
		"xg = EXCLUDED.xg, updated_at = NOW() RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 5 || args[0] != "42" || args[4] != 4.2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsertModel_RequiresConflictTarget(t *testing.T) {
	if _, err := UpsertModel("shooting", shootingRow{}); err == nil {
		t.Fatalf("expected error without conflict target")
	}
}

func TestModelColumns_RejectsNonStruct(t *testing.T) {
	if _, _, err := ModelColumns(42); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *shootingRow
	if _, _, err := ModelColumns(nilRow); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestInsertModel_PropagatesModelError(t *testing.T) {
	_, _, err := InsertModel("leagues", 42).Returning("id").ToSQL()
	if err == nil || !strings.Contains(err.Error(), "insert into leagues") {
		t.Fatalf("expected model error, got %v", err)
	}
}
