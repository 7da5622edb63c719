package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	require.NoError(t, err)

	pl, err := cat.League("premier-league")
	require.NoError(t, err)
	require.Equal(t, "Premier League", pl.Name)
	require.NotEmpty(t, pl.Entries)
	for _, entry := range pl.Entries {
		require.Equal(t, "stats_standard_9", entry.Tables.Players, entry.Team)
		require.Equal(t, "stats_keeper_9", entry.Tables.Goalkeeping, entry.Team)
	}
	require.Contains(t, cat.Keys(), "la-liga")
}

func TestLoad_LocalOverrideAndEntryDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	main := filepath.Join(dir, "catalog.json5")
	require.NoError(t, os.WriteFile(main, []byte(`{
  version: "1",
  leagues: {
    "serie-a": {
      name: "Serie A",
      nation: "Italy",
      tables: { players: "stats_standard_11", shooting: "stats_shooting_11" },
      entries: [
        { team: "Inter", season: "2023-2024", url: "https://fbref.com/en/squads/d609edc0/Internazionale-Stats",
          tables: { shooting: "custom_shooting" } },
      ],
    },
  },
}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.local.json5"), []byte(`{ version: "1-local" }`), 0o644))

	cat, err := NewLoader(main, nil).Catalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1-local", cat.Version)

	league, err := cat.League("serie-a")
	require.NoError(t, err)
	entry := league.Entries[0]
	require.Equal(t, "stats_standard_11", entry.Tables.Players)
	require.Equal(t, "custom_shooting", entry.Tables.Shooting)
	require.Empty(t, entry.Tables.Goalkeeping)
}

func TestParse_RejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{ version: "1", leagues: { x: { name: "X", entries: [ { team: "A", season: "2023", url: "not a url" } ] } } }`))
	require.Error(t, err)

	_, err = Parse([]byte(`{ version: "1", leagues: {} }`))
	require.Error(t, err)
}
