package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/yo-yo/internal/dataset"
	"github.com/pfrederiksen/yo-yo/internal/league"
	"github.com/pfrederiksen/yo-yo/internal/storage"
)

var (
	flagMinYear int
	flagMaxYear int
	flagSort    string
)

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams [query]",
		Short: "List teams in the dataset with their average league position",
		Long: `List the teams in the saved dataset whose names contain query (all teams
when omitted), with the average overall position over the seasons that ended
between --min-year and --max-year.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTeams,
	}

	cmd.Flags().IntVar(&flagMinYear, "min-year", 0, "Earliest season end year to average (default: first season)")
	cmd.Flags().IntVar(&flagMaxYear, "max-year", 0, "Latest season end year to average (default: last season)")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByName), "Sort order: name or average")

	return cmd
}

func runTeams(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	order := SortOrder(flagSort)
	if order != SortByName && order != SortByAverage {
		return fmt.Errorf("invalid sort order: %s (must be 'name' or 'average')", flagSort)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	ds, err := store.LoadDataset()
	if errors.Is(err, storage.ErrNoDataset) {
		return fmt.Errorf("no dataset in %s; run 'yo-yo fetch' first", store.Dir())
	}
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	minYear, maxYear := yearBounds(ds)
	if flagMinYear > 0 {
		minYear = flagMinYear
	}
	if flagMaxYear > 0 {
		maxYear = flagMaxYear
	}

	summaries := summarizeTeams(ds, ds.FilterTeams(query), minYear, maxYear)
	sortTeams(summaries, order)

	result := &TeamsResult{
		Query:   query,
		MinYear: minYear,
		MaxYear: maxYear,
		Teams:   summaries,
	}
	if err := WriteTeamsResult(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// yearBounds returns the end years of the first and last season in ds.
func yearBounds(ds *dataset.Dataset) (int, int) {
	first, last := ds.SeasonRange()
	minYear, err := league.EndYear(first)
	if err != nil {
		return 0, 0
	}
	maxYear, err := league.EndYear(last)
	if err != nil {
		return 0, 0
	}
	return minYear, maxYear
}

func summarizeTeams(ds *dataset.Dataset, ids []string, minYear, maxYear int) []TeamSummary {
	summaries := make([]TeamSummary, 0, len(ids))
	for _, id := range ids {
		team, _ := ds.Team(id)
		summary := TeamSummary{
			ID:      id,
			Names:   ds.Teams[id],
			Seasons: len(team.Seasons),
		}
		if avg, ok := ds.AveragePosition(id, minYear, maxYear); ok {
			summary.AveragePosition = &avg
		}
		for _, s := range team.Seasons {
			if summary.BestPosition == 0 || s.EffectivePosition < summary.BestPosition {
				summary.BestPosition = s.EffectivePosition
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
