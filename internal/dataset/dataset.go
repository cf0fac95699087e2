package dataset

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/yo-yo/internal/league"
)

// TeamSeason is one team's standing in one season.
type TeamSeason struct {
	Season            string `json:"season"`
	Tier              int    `json:"tier"`
	Division          string `json:"division,omitempty"`
	Position          int    `json:"position"`
	EffectivePosition int    `json:"effectivePosition"`
	Caps              bool   `json:"caps,omitempty"`
	Stats             []int  `json:"stats,omitempty"`
}

// TeamSeasons is the history of one team.
type TeamSeasons struct {
	Team    string       `json:"team"`
	Seasons []TeamSeason `json:"seasons"`
}

// DivisionSummary describes one division of a season.
type DivisionSummary struct {
	Tier  int    `json:"tier"`
	Title string `json:"title"`
	Size  int    `json:"size"`
}

// SeasonTiers lists the divisions of one season.
type SeasonTiers struct {
	Season    string            `json:"season"`
	Divisions []DivisionSummary `json:"divisions"`
}

// TierSize is the number of teams in a tier in one season.
type TierSize struct {
	Season string `json:"season"`
	Size   int    `json:"size"`
}

// TierSizes is the size of one tier across all seasons.
type TierSizes struct {
	Tier    int        `json:"tier"`
	Seasons []TierSize `json:"seasons"`
}

// Dataset is the merged data read by the chart.
type Dataset struct {
	Seasons   []TeamSeasons       `json:"seasons"`
	Teams     map[string][]string `json:"teams"`
	Tiers     []SeasonTiers       `json:"tiers"`
	TierSizes []TierSizes         `json:"tierSizes"`
}

// Team returns the history of the team with the given ID.
func (d *Dataset) Team(id string) (TeamSeasons, bool) {
	i := sort.Search(len(d.Seasons), func(i int) bool { return d.Seasons[i].Team >= id })
	if i < len(d.Seasons) && d.Seasons[i].Team == id {
		return d.Seasons[i], true
	}
	return TeamSeasons{}, false
}

// AveragePosition returns the mean effective position of a team over the
// seasons that finished between minYear and maxYear inclusive. ok is false
// when the team played no such season.
func (d *Dataset) AveragePosition(id string, minYear, maxYear int) (avg float64, ok bool) {
	team, found := d.Team(id)
	if !found {
		return 0, false
	}

	total, count := 0, 0
	for _, s := range team.Seasons {
		end, err := league.EndYear(s.Season)
		if err != nil || end < minYear || end > maxYear || s.EffectivePosition <= 0 {
			continue
		}
		total += s.EffectivePosition
		count++
	}

	if count == 0 {
		return 0, false
	}
	return float64(total) / float64(count), true
}

// FilterTeams returns, in ID order, the teams having a name that contains
// query, ignoring case. An empty query matches every team.
func (d *Dataset) FilterTeams(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))

	ids := make([]string, 0, len(d.Teams))
	for id, names := range d.Teams {
		if query == "" || strings.Contains(strings.ToLower(strings.Join(names, ", ")), query) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// SeasonRange returns the first and last season in the dataset.
func (d *Dataset) SeasonRange() (first, last string) {
	if len(d.Tiers) == 0 {
		return "", ""
	}
	return d.Tiers[0].Season, d.Tiers[len(d.Tiers)-1].Season
}
