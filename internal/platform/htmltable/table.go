// Package htmltable reads positional HTML tables into typed records.
//
// A Schema lists, for one record kind, the ordered column table
// {field, index, setter}, the minimum cell count a row needs and the header
// label that marks repeated header rows. Extract applies a schema to every
// body row of the located table and yields the records lazily.
package htmltable

import (
	"fmt"
	"html"
	"iter"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
)

// Cell is one th/td of a body row.
type Cell struct {
	sel *goquery.Selection
}

func (c Cell) Text() string {
	if c.sel == nil {
		return ""
	}
	return CleanText(c.sel.Text())
}

func (c Cell) Int() int {
	return ParseInt(c.Text())
}

func (c Cell) Float() float64 {
	return ParseFloat(c.Text())
}

// Href returns the first anchor target inside the cell.
func (c Cell) Href() string {
	if c.sel == nil {
		return ""
	}
	href, _ := c.sel.Find("a").First().Attr("href")
	return strings.TrimSpace(href)
}

// Attr reads an attribute of the cell element itself, e.g. data-stat.
func (c Cell) Attr(name string) string {
	if c.sel == nil {
		return ""
	}
	value, _ := c.sel.Attr(name)
	return strings.TrimSpace(value)
}

// Column binds one cell index to one record field.
type Column[T any] struct {
	Field string
	Index int
	Set   func(rec *T, cell Cell)
}

type Schema[T any] struct {
	Kind        string
	MinCells    int
	HeaderLabel string
	Columns     []Column[T]
}

// Validate rejects columns without setters, negative indexes and fields
// declared twice.
func (s Schema[T]) Validate() error {
	seen := make(map[string]struct{}, len(s.Columns))
	for _, col := range s.Columns {
		if col.Set == nil {
			return fmt.Errorf("%s column %q has no setter", s.Kind, col.Field)
		}
		if col.Index < 0 {
			return fmt.Errorf("%s column %q has negative index", s.Kind, col.Field)
		}
		if _, ok := seen[col.Field]; ok {
			return fmt.Errorf("%s column %q declared twice", s.Kind, col.Field)
		}
		seen[col.Field] = struct{}{}
	}
	return nil
}

var skippedRowClasses = []string{"thead", "over_header", "spacer", "partial_table"}

// Extract yields one record per accepted body row of the table found at
// location. A missing table yields nothing. Rows below MinCells, rows whose
// first cell is empty or equals HeaderLabel, and rows whose setters panic
// are skipped.
func Extract[T any](rawHTML, location string, schema Schema[T], logger *logging.Logger) iter.Seq[T] {
	if logger == nil {
		logger = logging.Default()
	}

	return func(yield func(T) bool) {
		doc, err := Parse(rawHTML)
		if err != nil {
			logger.Warn("parse html document failed", "kind", schema.Kind, "error", err)
			return
		}

		table := Locate(doc, location)
		if table.Length() == 0 {
			logger.Debug("table not found", "kind", schema.Kind, "location", location)
			return
		}

		for i, row := range table.Find("tbody > tr").EachIter() {
			if hasAnyClass(row, skippedRowClasses) {
				continue
			}
			rec, ok := readRow(row, schema, i, logger)
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

func readRow[T any](row *goquery.Selection, schema Schema[T], index int, logger *logging.Logger) (rec T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("skip table row after parse failure",
				"kind", schema.Kind,
				"row", index,
				"panic", fmt.Sprint(r),
			)
			ok = false
		}
	}()

	cells := row.Find("th, td")
	if cells.Length() < schema.MinCells {
		return rec, false
	}

	first := CleanText(cells.First().Text())
	if first == "" || (schema.HeaderLabel != "" && first == schema.HeaderLabel) {
		return rec, false
	}

	for _, col := range schema.Columns {
		var cell Cell
		if col.Index < cells.Length() {
			cell = Cell{sel: cells.Eq(col.Index)}
		}
		col.Set(&rec, cell)
	}

	return rec, true
}

// Parse builds a document after unwrapping HTML comments; sports-reference
// sites ship secondary tables commented out and reveal them client side.
func Parse(rawHTML string) (*goquery.Document, error) {
	clean := strings.ReplaceAll(rawHTML, "<!--", "")
	clean = strings.ReplaceAll(clean, "-->", "")
	return goquery.NewDocumentFromReader(strings.NewReader(clean))
}

// Locate resolves a location expression to a table node. A bare identifier
// such as "stats_standard_9" is treated as a table id; anything else is a
// CSS selector. A selector that matches a wrapper resolves to its first table.
func Locate(doc *goquery.Document, location string) *goquery.Selection {
	location = strings.TrimSpace(location)
	if doc == nil || location == "" {
		return &goquery.Selection{}
	}

	if isBareIdentifier(location) {
		if sel := doc.Find("table#" + location); sel.Length() > 0 {
			return sel.First()
		}
		location = "#" + location
	}

	sel := doc.Find(location).First()
	if sel.Length() == 0 || goquery.NodeName(sel) == "table" {
		return sel
	}
	return sel.Find("table").First()
}

func isBareIdentifier(v string) bool {
	for _, r := range v {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func hasAnyClass(sel *goquery.Selection, classes []string) bool {
	for _, class := range classes {
		if sel.HasClass(class) {
			return true
		}
	}
	return false
}

// CleanText decodes entities, drops control characters and collapses
// whitespace (including non-breaking spaces).
func CleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) || r == '\u200b' || r == '\ufeff' {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// ParseInt never fails: thousands separators, signs and percent marks are
// tolerated, decimals are truncated, anything else is zero.
func ParseInt(s string) int {
	s = normalizeNumber(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func ParseFloat(s string) float64 {
	s = normalizeNumber(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimPrefix(s, "+")
	return strings.TrimSpace(s)
}

// ParseAge reads the years part of "years-days" ages such as "23-123".
func ParseAge(s string) int {
	s = strings.TrimSpace(s)
	if years, _, ok := strings.Cut(s, "-"); ok && years != "" {
		return ParseInt(years)
	}
	return ParseInt(s)
}
