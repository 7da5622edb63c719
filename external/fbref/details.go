package fbref

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fbref-crawler/internal/domain/player"
	"github.com/riskibarqy/fbref-crawler/internal/platform/htmltable"
)

// Details reads the #meta block of a player profile page. It reports false
// when the page has no player name.
func (p *Parser) Details(html string) (details player.Details, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("skip player profile after parse failure", "panic", r)
			details, ok = player.Details{}, false
		}
	}()

	doc, err := htmltable.Parse(html)
	if err != nil {
		p.logger.Warn("parse player profile failed", "error", err)
		return player.Details{}, false
	}

	meta := doc.Find("#meta").First()
	if meta.Length() == 0 {
		meta = doc.Selection
	}

	details.Name = htmltable.CleanText(meta.Find("h1").First().Text())
	if details.Name == "" {
		return player.Details{}, false
	}

	details.FullName = details.Name
	meta.Find("p").EachWithBreak(func(_ int, para *goquery.Selection) bool {
		strong := para.ChildrenFiltered("strong")
		if strong.Length() != 1 || para.Children().Length() != 1 {
			return true
		}
		label := htmltable.CleanText(strong.Text())
		if label == "" || strings.HasSuffix(label, ":") {
			return true
		}
		details.FullName = label
		return false
	})

	details.Position = labelledValue(meta, "Position:")
	details.Citizenship = labelledAnchors(meta, "Citizenship:")
	details.Club = labelledAnchors(meta, "Club:")

	born := meta.Find("span[itemprop=birthDate]").First()
	if value, exists := born.Attr("data-birth"); exists && strings.TrimSpace(value) != "" {
		details.Born = strings.TrimSpace(value)
	} else {
		details.Born = htmltable.CleanText(born.Text())
	}

	return details, true
}

func labelParagraph(meta *goquery.Selection, label string) (*goquery.Selection, *goquery.Selection) {
	var para, strong *goquery.Selection
	meta.Find("p strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if htmltable.CleanText(s.Text()) == label {
			para, strong = s.Parent(), s
			return false
		}
		return true
	})
	return para, strong
}

// labelledValue returns the paragraph text after a "Label:" strong, up to
// the square bullet fbref puts between facts.
func labelledValue(meta *goquery.Selection, label string) string {
	para, _ := labelParagraph(meta, label)
	if para == nil {
		return ""
	}

	text := htmltable.CleanText(para.Text())
	if idx := strings.Index(text, label); idx >= 0 {
		text = text[idx+len(label):]
	}
	if idx := strings.Index(text, "\u25aa"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func labelledAnchors(meta *goquery.Selection, label string) string {
	para, strong := labelParagraph(meta, label)
	if para == nil {
		return ""
	}

	names := make([]string, 0, 2)
	strong.NextAll().Filter("a").Each(func(_ int, a *goquery.Selection) {
		if name := htmltable.CleanText(a.Text()); name != "" {
			names = append(names, name)
		}
	})
	if len(names) > 0 {
		return strings.Join(names, ", ")
	}
	return labelledValue(meta, label)
}
