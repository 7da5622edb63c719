package fbref

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
)

const sakaProfile = `<html><body>
<div id="meta">
  <div>
    <h1><span>Bukayo Saka</span></h1>
    <p><strong>Bukayo Ayoyinka Temidayo Saka</strong></p>
    <p><strong>Position:</strong> FW-MF (AM-WM, right) &#9642;&nbsp; <strong>Footed:</strong> Left</p>
    <p>178cm, 72kg</p>
    <p><strong>Born:</strong> <span itemprop="birthDate" id="necro-birth" data-birth="2001-09-05">September 5, 2001</span></p>
    <p><strong>Citizenship:</strong> <a href="/en/country/ENG/England-Football">England</a></p>
    <p><strong>Club:</strong> <a href="/en/squads/18bb7c10/Arsenal-Stats">Arsenal</a></p>
  </div>
</div>
</body></html>`

func TestParserDetails(t *testing.T) {
	t.Parallel()

	got, ok := NewParser(nil).Details(sakaProfile)
	if !ok {
		t.Fatalf("expected details to be parsed")
	}

	want := player.Details{
		Name:        "Bukayo Saka",
		FullName:    "Bukayo Ayoyinka Temidayo Saka",
		Born:        "2001-09-05",
		Citizenship: "England",
		Position:    "FW-MF (AM-WM, right)",
		Club:        "Arsenal",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected details (-want +got):\n%s", diff)
	}
}

func TestParserDetails_FallsBackToName(t *testing.T) {
	t.Parallel()

	page := `<div id="meta"><h1>Rodri</h1><p><strong>Position:</strong> MF</p></div>`
	got, ok := NewParser(nil).Details(page)
	if !ok {
		t.Fatalf("expected details to be parsed")
	}
	if got.FullName != "Rodri" || got.Position != "MF" || got.Born != "" {
		t.Fatalf("unexpected details %+v", got)
	}
}

func TestParserDetails_NoName(t *testing.T) {
	t.Parallel()

	if _, ok := NewParser(nil).Details("<html><body><p>gone</p></body></html>"); ok {
		t.Fatalf("expected page without a name to be rejected")
	}
}
