package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/fbref-crawler/internal/domain/crawl"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

func newTable(out io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	t.SetTitle(title)
	return t
}

func renderCrawlResult(out io.Writer, result usecase.CrawlResult) {
	title := result.LeagueKey
	if result.League != "" {
		title = fmt.Sprintf("%s (%s)", result.League, result.Nation)
	}

	t := newTable(out, title)
	t.AppendHeader(table.Row{"Page", "Season", "Status", "Imports", "Error"})
	for _, status := range result.Statuses {
		t.AppendRow(table.Row{
			status.Label,
			status.Season,
			fmt.Sprintf("%d %s", status.StatusCode, status.StatusText),
			summarizeImports(status.Imports),
			status.Error,
		})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d pages", len(result.Statuses)), fmt.Sprintf("%d failed", result.Failed()), result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond).String()})
	t.Render()
}

// summarizeImports renders outcomes as "players:23 goalkeeping:FAIL".
func summarizeImports(outcomes []crawl.ImportOutcome) string {
	parts := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Success {
			parts = append(parts, fmt.Sprintf("%s:%d", outcome.DataType, outcome.Saved))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:FAIL", outcome.DataType))
	}
	return strings.Join(parts, " ")
}

func renderReimportReport(out io.Writer, report usecase.ReimportReport) {
	t := newTable(out, report.Dir)
	t.AppendHeader(table.Row{"File", "Type", "Club", "Status", "Saved", "Message"})
	for _, task := range report.Tasks {
		t.AppendRow(table.Row{task.Path, task.DataType, task.Club, task.Status, task.Saved, task.Message})
	}
	t.AppendFooter(table.Row{
		"",
		"",
		"",
		fmt.Sprintf("%d ok / %d failed / %d skipped", report.Succeeded, report.Failed, report.Skipped),
		"",
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String(),
	})
	t.Render()
}

func renderCatalog(out io.Writer, cat crawl.Catalog) {
	t := newTable(out, "catalog "+cat.Version)
	t.AppendHeader(table.Row{"Key", "League", "Nation", "Pages", "Profiles"})
	for _, key := range cat.Keys() {
		lc := cat.Leagues[key]
		t.AppendRow(table.Row{key, lc.Name, lc.Nation, len(lc.Entries), len(lc.Profiles)})
	}
	t.Render()
}
