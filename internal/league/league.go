package league

import (
	"encoding/json"
	"fmt"
)

// Synthetic leading header columns present on every division.
const (
	ColumnCaps = "Caps"
	ColumnPos  = "Pos"
	ColumnTeam = "Team"
)

// BaseHeader returns a fresh copy of the synthetic header columns.
func BaseHeader() []string {
	return []string{ColumnCaps, ColumnPos, ColumnTeam}
}

// Division is one contiguous league table found in a season's text.
type Division struct {
	Info   []string `json:"info"`
	Header []string `json:"header"`
	Tier   int      `json:"tier"`
	Table  []Row    `json:"table"`
}

// Title returns the first info line, which on RSSSF pages names the division.
func (d Division) Title() string {
	if len(d.Info) == 0 {
		return ""
	}
	return d.Info[0]
}

// Size returns the number of teams in the division.
func (d Division) Size() int {
	return len(d.Table)
}

// Row is one team's line in a division table.
type Row struct {
	Caps  bool   // team name was printed in capitals
	Pos   int    // league position
	Team  string // normalised team name
	Stats []int  // first stat (usually games played) followed by the rest
}

// MarshalJSON encodes the row as [caps, pos, team, stat, ...].
func (r Row) MarshalJSON() ([]byte, error) {
	tuple := make([]interface{}, 0, 3+len(r.Stats))
	tuple = append(tuple, r.Caps, r.Pos, r.Team)
	for _, s := range r.Stats {
		tuple = append(tuple, s)
	}
	return json.Marshal(tuple)
}

// UnmarshalJSON decodes the positional array written by MarshalJSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("decoding row: %w", err)
	}
	if len(tuple) < 3 {
		return fmt.Errorf("decoding row: want at least 3 fields, got %d", len(tuple))
	}

	var row Row
	if err := json.Unmarshal(tuple[0], &row.Caps); err != nil {
		return fmt.Errorf("decoding row caps: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &row.Pos); err != nil {
		return fmt.Errorf("decoding row position: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &row.Team); err != nil {
		return fmt.Errorf("decoding row team: %w", err)
	}

	row.Stats = make([]int, 0, len(tuple)-3)
	for i, raw := range tuple[3:] {
		var stat int
		if err := json.Unmarshal(raw, &stat); err != nil {
			return fmt.Errorf("decoding row stat %d: %w", i, err)
		}
		row.Stats = append(row.Stats, stat)
	}

	*r = row
	return nil
}
