package app

import (
	"strings"
	"testing"

	"github.com/riskibarqy/fbref-crawler/internal/config"
)

func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantSub string
	}{
		{
			name:    "adds binary result flag",
			cfg:     config.Config{DBURL: " postgres://crawler:secret@db:5432/fbref?sslmode=disable ", DBDisablePreparedBinary: true},
			wantSub: "disable_prepared_binary_result=yes",
		},
		{
			name: "explicit flag wins",
			cfg:  config.Config{DBURL: "postgres://db/fbref?disable_prepared_binary_result=no", DBDisablePreparedBinary: true},
			want: "postgres://db/fbref?disable_prepared_binary_result=no",
		},
		{
			name: "flag disabled",
			cfg:  config.Config{DBURL: "postgres://db/fbref"},
			want: "postgres://db/fbref",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DatabaseURL(tt.cfg)
			if tt.want != "" && got != tt.want {
				t.Fatalf("DatabaseURL() = %q, want %q", got, tt.want)
			}
			if tt.wantSub != "" && !strings.Contains(got, tt.wantSub) {
				t.Fatalf("DatabaseURL() = %q, want it to contain %q", got, tt.wantSub)
			}
		})
	}
}

func TestDBNameFromURL(t *testing.T) {
	cases := map[string]string{
		"postgres://crawler:secret@db:5432/fbref?sslmode=disable":   "fbref",
		"host=db user=crawler dbname='fbref_stats' sslmode=disable": "fbref_stats",
		"postgres://db:5432/": "",
	}
	for in, want := range cases {
		if got := dbNameFromURL(in); got != want {
			t.Fatalf("dbNameFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		got := formatDBQueryForTrace(" SELECT id, name\n  FROM clubs \t WHERE name = $1 ")
		if want := "SELECT id, name FROM clubs WHERE name = $1"; got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("summarizes upsert lists", func(t *testing.T) {
		query := "INSERT INTO goalkeeping (reference_id, season, player_id, saves)\nVALUES ($1, $2, $3, $4) " +
			"ON CONFLICT (reference_id, season) DO UPDATE SET player_id = EXCLUDED.player_id, saves = EXCLUDED.saves RETURNING id"
		got := formatDBQueryForTrace(query)
		want := "INSERT INTO goalkeeping (4 columns) VALUES (...) ON CONFLICT (reference_id, season) DO UPDATE SET 2 columns RETURNING id"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("truncates on rune boundary", func(t *testing.T) {
		query := "SELECT '" + strings.Repeat("é", maxTracedQueryLength) + "'"
		got := formatDBQueryForTrace(query)
		if !strings.HasSuffix(got, "...") || len(got) > maxTracedQueryLength+3 {
			t.Fatalf("unexpected truncation, len=%d", len(got))
		}
		if !strings.HasPrefix(got, "SELECT '") || strings.ContainsRune(got, '�') {
			t.Fatalf("truncation split a rune")
		}
	})
}
