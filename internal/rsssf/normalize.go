package rsssf

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Leftmost run of name characters; drops asterisks and footnote digits.
	nameRunPattern = regexp.MustCompile(`[A-Za-z &']+`)

	// Abbreviations mangled by capitalisation.
	abbreviationPattern = regexp.MustCompile(`(Af|F)c|Rmi`)
)

// NormalizeTeamName tidies a team name taken from a table row, allowing for
// all-caps names, trailing markers and common abbreviations.
//
//	NormalizeTeamName("RUSHDEN & DIAMONDS")   // "Rushden & Diamonds"
//	NormalizeTeamName("Burton*")              // "Burton"
//	NormalizeTeamName("AFC BOURNEMOUTH")      // "AFC Bournemouth"
//	NormalizeTeamName("Leigh RMI")            // "Leigh RMI"
//	NormalizeTeamName("QUEEN'S PARK RANGERS") // "Queen's Park Rangers"
func NormalizeTeamName(raw string) string {
	words := strings.Fields(raw)
	for i, w := range words {
		words[i] = capitalize(w)
	}

	name := strings.Join(words, " ")
	name = strings.ReplaceAll(name, ".", "")
	name = nameRunPattern.FindString(name)
	name = abbreviationPattern.ReplaceAllStringFunc(name, strings.ToUpper)

	return strings.TrimSpace(name)
}

// capitalize upper-cases the first letter of w and lower-cases the rest.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(w)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// isAllCaps reports whether the raw team segment was printed in capitals.
func isAllCaps(team string) bool {
	return team == strings.ToUpper(team)
}
