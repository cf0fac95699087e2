package cli

import (
	"sort"
	"strings"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByName    SortOrder = "name"
	SortByAverage SortOrder = "average"
)

// sortTeams sorts team summaries in place
func sortTeams(teams []TeamSummary, order SortOrder) {
	switch order {
	case SortByName:
		sort.SliceStable(teams, func(i, j int) bool {
			return compareByName(teams[i], teams[j])
		})
	case SortByAverage:
		sort.SliceStable(teams, func(i, j int) bool {
			return compareByAverage(teams[i], teams[j])
		})
	}
}

// compareByName orders teams by their current display name
func compareByName(i, j TeamSummary) bool {
	ni, nj := strings.ToLower(i.DisplayName()), strings.ToLower(j.DisplayName())
	if ni != nj {
		return ni < nj
	}
	return i.ID < j.ID
}

// compareByAverage puts the best average position first; teams without an
// average in the selected years go last, by name
func compareByAverage(i, j TeamSummary) bool {
	if i.AveragePosition != nil && j.AveragePosition != nil {
		if *i.AveragePosition != *j.AveragePosition {
			return *i.AveragePosition < *j.AveragePosition
		}
		return compareByName(i, j)
	}
	if i.AveragePosition != nil {
		return true
	}
	if j.AveragePosition != nil {
		return false
	}
	return compareByName(i, j)
}
