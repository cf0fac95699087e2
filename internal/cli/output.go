package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pfrederiksen/yo-yo/internal/league"
	"github.com/pfrederiksen/yo-yo/internal/pipeline"
	"github.com/pfrederiksen/yo-yo/internal/rsssf"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseResult is the output of the parse command.
type ParseResult struct {
	Divisions []league.Division `json:"divisions"`
	NextTier  int               `json:"next_tier"`
	Warnings  []rsssf.Warning   `json:"warnings,omitempty"`
}

// FetchResult is the output of the fetch command.
type FetchResult struct {
	Report      *pipeline.Report `json:"report"`
	DatasetPath string           `json:"dataset_path"`
}

// TeamSummary describes one team in the teams listing.
type TeamSummary struct {
	ID              string   `json:"id"`
	Names           []string `json:"names"`
	Seasons         int      `json:"seasons"`
	BestPosition    int      `json:"best_position"`
	AveragePosition *float64 `json:"average_position,omitempty"`
}

// DisplayName returns the most recent name of the team.
func (t TeamSummary) DisplayName() string {
	if len(t.Names) == 0 {
		return t.ID
	}
	return t.Names[0]
}

// TeamsResult is the output of the teams command.
type TeamsResult struct {
	Query   string        `json:"query,omitempty"`
	MinYear int           `json:"min_year"`
	MaxYear int           `json:"max_year"`
	Teams   []TeamSummary `json:"teams"`
}

// WriteParseResult writes parsed divisions in the specified format
func WriteParseResult(w io.Writer, result *ParseResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeParseText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteFetchResult writes a run report in the specified format
func WriteFetchResult(w io.Writer, result *FetchResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeFetchText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteTeamsResult writes a teams listing in the specified format
func WriteTeamsResult(w io.Writer, result *TeamsResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeTeamsText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeParseText(w io.Writer, result *ParseResult) error {
	if len(result.Divisions) == 0 {
		fmt.Fprintln(w, "No tables found.")
	}

	for i, div := range result.Divisions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := div.Title()
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "Tier %d: %s (%d teams)\n", div.Tier, title, div.Size())
		fmt.Fprintf(w, "  %s\n", strings.Join(div.Header, " "))
		for _, row := range div.Table {
			team := row.Team
			if row.Caps {
				team = strings.ToUpper(team)
			}
			fmt.Fprintf(w, "  %3d. %-28s %s\n", row.Pos, team, joinInts(row.Stats))
		}
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	fmt.Fprintf(w, "\nNext tier: %d\n", result.NextTier)
	return nil
}

func writeFetchText(w io.Writer, result *FetchResult) error {
	r := result.Report
	fmt.Fprintf(w, "Seasons charted: %d\n", r.SeasonsCharted)
	fmt.Fprintf(w, "  fetched:   %d\n", r.SeasonsFetched)
	fmt.Fprintf(w, "  cached:    %d\n", r.SeasonsCached)
	fmt.Fprintf(w, "  reused:    %d\n", r.SeasonsReused)
	fmt.Fprintf(w, "  missing:   %d\n", r.SeasonsMissing)
	fmt.Fprintf(w, "  no tables: %d\n", r.SeasonsNoTables)
	fmt.Fprintf(w, "Divisions: %d\n", r.Divisions)
	if r.Warnings > 0 {
		fmt.Fprintf(w, "Warnings: %d\n", r.Warnings)
	}
	fmt.Fprintf(w, "Dataset: %s\n", result.DatasetPath)
	return nil
}

func writeTeamsText(w io.Writer, result *TeamsResult) error {
	if len(result.Teams) == 0 {
		fmt.Fprintln(w, "No teams found.")
		return nil
	}

	for _, team := range result.Teams {
		avg := "-"
		if team.AveragePosition != nil {
			avg = strconv.FormatFloat(*team.AveragePosition, 'f', 1, 64)
		}
		fmt.Fprintf(w, "%-30s %6s  best %3d  %3d seasons\n", team.DisplayName(), avg, team.BestPosition, team.Seasons)
		if len(team.Names) > 1 {
			fmt.Fprintf(w, "  also: %s\n", strings.Join(team.Names[1:], ", "))
		}
	}
	fmt.Fprintf(w, "\nTotal: %d teams (%d-%d)\n", len(result.Teams), result.MinYear, result.MaxYear)
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
