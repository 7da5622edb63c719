package app

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 1024

// Import upserts list every stat column three times (columns, placeholders
// and the SET list), which buries the table and conflict target in traces.
var (
	insertColumnsRe = regexp.MustCompile(`^(INSERT INTO \S+) \(([^)]*)\) VALUES \(([^)]*)\)`)
	updateSetRe     = regexp.MustCompile(`(DO UPDATE SET) (.+?)( RETURNING .*)?$`)
)

func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if normalized == "" {
		return normalized
	}

	if m := insertColumnsRe.FindStringSubmatch(normalized); m != nil {
		cols := listLen(m[2])
		normalized = m[1] + " (" + strconv.Itoa(cols) + " columns) VALUES (...)" + normalized[len(m[0]):]
	}
	if m := updateSetRe.FindStringSubmatchIndex(normalized); m != nil {
		sets := listLen(normalized[m[4]:m[5]])
		tail := ""
		if m[6] >= 0 {
			tail = normalized[m[6]:m[7]]
		}
		normalized = normalized[:m[0]] + "DO UPDATE SET " + strconv.Itoa(sets) + " columns" + tail
	}

	return truncateQuery(normalized, maxTracedQueryLength)
}

func listLen(list string) int {
	if strings.TrimSpace(list) == "" {
		return 0
	}
	return strings.Count(list, ",") + 1
}

func truncateQuery(query string, limit int) string {
	if len(query) <= limit {
		return query
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
