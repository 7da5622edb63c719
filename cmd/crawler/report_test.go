package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/platform/refid"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

func TestSummarizeImports(t *testing.T) {
	got := summarizeImports([]crawl.ImportOutcome{
		{DataType: crawl.DataTypePlayers, Success: true, Saved: 23},
		{DataType: crawl.DataTypeGoalkeeping, Success: false},
	})
	if got != "players:23 goalkeeping:FAIL" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestRenderCrawlResult(t *testing.T) {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	renderCrawlResult(&buf, usecase.CrawlResult{
		LeagueKey:  "premier-league",
		League:     "Premier League",
		Nation:     "England",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Statuses: []crawl.Status{
			{Label: "Arsenal", Season: "2023-2024", StatusCode: 200, StatusText: "OK"},
			{Label: "Wolves", Season: "2023-2024", StatusCode: 429, StatusText: "Too Many Requests", Error: "rate limited"},
		},
	})

	// footers and headers are upper-cased by the table style
	out := strings.ToLower(buf.String())
	for _, want := range []string{"premier league (england)", "arsenal", "429 too many requests", "2 pages", "1 failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderReimportReport(t *testing.T) {
	var buf bytes.Buffer
	renderReimportReport(&buf, usecase.ReimportReport{
		Dir:       "data/snapshots",
		Succeeded: 1,
		Skipped:   1,
		Tasks: []usecase.ReimportTaskResult{
			{Path: "Arsenal_players_20240101_000000.json", DataType: crawl.DataTypePlayers, Club: "Arsenal", Status: usecase.ReimportSuccess, Saved: 25},
			{Path: "Arsenal_matchlogs_20240101_000000.json", Status: usecase.ReimportSkipped},
		},
	})

	out := strings.ToLower(buf.String())
	if !strings.Contains(out, "1 ok / 0 failed / 1 skipped") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestRefidCommand(t *testing.T) {
	var buf bytes.Buffer
	root := newRootCmd(&buf)
	root.PersistentPreRunE = nil
	root.PersistentPostRunE = nil
	root.SetArgs([]string{"refid", "Bukayo Saka", "Arsenal"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute refid: %v", err)
	}
	if got, want := strings.TrimSpace(buf.String()), refid.Generate("Bukayo Saka", "Arsenal"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCrawlCommandRequiresLeagues(t *testing.T) {
	var buf bytes.Buffer
	root := newRootCmd(&buf)
	root.PersistentPreRunE = nil
	root.PersistentPostRunE = nil
	root.SetErr(&buf)
	root.SetArgs([]string{"crawl"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected error without leagues or --all")
	}
}
