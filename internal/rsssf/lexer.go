package rsssf

import (
	"regexp"
	"strconv"
	"strings"
)

// placeMarker is the leading league position of a table row. The dot is
// optional because some pages (the 1994-95 Premier League among them) omit it.
const placeMarker = `^ *([0-9]+)\.?=? `

var (
	placePattern     = regexp.MustCompile(placeMarker)
	textPlacePattern = regexp.MustCompile(`(?m)` + placeMarker)

	// Everything up to and including the first number after the team name,
	// usually games played.
	rowPattern = regexp.MustCompile(placeMarker + `(.*?) +([0-9]+)`)
)

// rowTokens is a table line split into its typed parts.
type rowTokens struct {
	pos     int
	team    string   // raw team segment, before normalisation
	stats   []int    // first stat followed by the remaining numeric tokens
	coerced []string // tokens that held no leading integer and became 0
}

// isRow reports whether line starts with a row marker.
func isRow(line string) bool {
	return placePattern.MatchString(line)
}

// hasRows reports whether any line of text starts with a row marker.
func hasRows(text string) bool {
	return textPlacePattern.MatchString(text)
}

// lexRow splits a row line into position, team segment and stats. It returns
// false when the line has a row marker but no number after the team name.
func lexRow(line string) (rowTokens, bool) {
	m := rowPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return rowTokens{}, false
	}

	pos, _ := strconv.Atoi(line[m[2]:m[3]])
	first, _ := strconv.Atoi(line[m[6]:m[7]])

	tok := rowTokens{
		pos:   pos,
		team:  line[m[4]:m[5]],
		stats: []int{first},
	}

	for _, field := range strings.Fields(line[m[1]:]) {
		n, ok := leadingInt(field)
		if !ok {
			tok.coerced = append(tok.coerced, field)
		}
		tok.stats = append(tok.stats, n)
	}

	return tok, true
}

// leadingInt parses the optional sign and digits at the start of s, ignoring
// anything after them, so "85-35" reads as 85. It returns 0 and false when s
// does not start with an integer.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
