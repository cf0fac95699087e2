package rsssf

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/yo-yo/internal/league"
)

// southMarker identifies the second of a pair of regional divisions. The
// Third Division (North) is always listed before its (South) counterpart, and
// both sit at the same level.
const southMarker = "(South)"

// Warning describes a line the parser accepted with a lossy reading.
type Warning struct {
	Line    int    `json:"line"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Message, w.Text)
}

// Parser extracts divisions from season text and keeps the warnings raised
// along the way. The zero value is ready to use.
type Parser struct {
	Warnings []Warning
}

// ParseTables pulls all tables out of a season's text. See Parser.Parse.
func ParseTables(text string, tier int) ([]league.Division, int) {
	var p Parser
	return p.Parse(text, tier)
}

// Parse returns the divisions found in text, in document order, and the tier
// counter after the last one. tier is the level assigned to the first table;
// each later table is placed one level lower unless it is a (South) division.
//
// Parse returns nil divisions and the unchanged tier when no line of text
// looks like a table row. Tables whose header never gained a points column
// are dropped, which filters out play-off summaries and similar look-alikes.
//
// Stats that are not numbers are read as 0 and reported in p.Warnings.
func (p *Parser) Parse(text string, tier int) ([]league.Division, int) {
	if !hasRows(text) {
		return nil, tier
	}

	s := newScanState(tier)

	// The trailing blank line flushes a table that runs to the end of text.
	for i, line := range strings.Split(text+"\n ", "\n") {
		p.scan(s, i+1, strings.TrimSuffix(line, "\r"))
	}

	return s.divisions, s.tier
}

// scan advances the state machine by one line.
func (p *Parser) scan(s *scanState, lineNo int, line string) {
	if !isRow(line) {
		if s.inTable {
			s.flush()
			return
		}
		s.collect(line)
		return
	}

	s.inTable = true

	tok, ok := lexRow(line)
	if !ok {
		p.warn(lineNo, line, "row has no stats after the team name; skipped")
		return
	}
	for _, field := range tok.coerced {
		p.warn(lineNo, line, fmt.Sprintf("stat %q is not a number; read as 0", field))
	}

	s.table = append(s.table, league.Row{
		Caps:  isAllCaps(tok.team),
		Pos:   tok.pos,
		Team:  NormalizeTeamName(tok.team),
		Stats: tok.stats,
	})
}

func (p *Parser) warn(lineNo int, line, msg string) {
	p.Warnings = append(p.Warnings, Warning{Line: lineNo, Text: line, Message: msg})
}

// scanState holds the accumulators for the division being read.
type scanState struct {
	inTable   bool
	tier      int
	info      []string
	header    []string
	table     []league.Row
	divisions []league.Division
}

func newScanState(tier int) *scanState {
	s := &scanState{
		tier:      tier,
		divisions: []league.Division{},
	}
	s.reset()
	return s
}

// collect files a line read outside a table as header or info.
func (s *scanState) collect(line string) {
	if strings.Contains(strings.ToLower(line), "pts") {
		s.header = append(s.header, strings.Fields(line)...)
		return
	}
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		s.info = append(s.info, trimmed)
	}
}

// flush records the finished division and starts a new one.
func (s *scanState) flush() {
	if s.isSouth() {
		s.tier--
	}

	if len(s.header) != len(league.BaseHeader()) {
		s.divisions = append(s.divisions, league.Division{
			Info:   s.info,
			Header: s.header,
			Tier:   s.tier,
			Table:  s.table,
		})
	}

	s.inTable = false
	s.tier++
	s.reset()
}

func (s *scanState) isSouth() bool {
	for _, line := range s.info {
		if strings.Contains(line, southMarker) {
			return true
		}
	}
	return false
}

func (s *scanState) reset() {
	s.info = []string{}
	s.header = league.BaseHeader()
	s.table = []league.Row{}
}
