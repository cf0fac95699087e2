package dataset

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDataset_AveragePosition(t *testing.T) {
	ds := twoSeasons(t).Build()

	tests := []struct {
		name    string
		team    string
		minYear int
		maxYear int
		want    float64
		wantOK  bool
	}{
		{name: "both seasons", team: "wigan-borough", minYear: 1900, maxYear: 2000, want: 5, wantOK: true},
		{name: "end year bounds", team: "notts-county", minYear: 1922, maxYear: 1922, want: 3, wantOK: true},
		{name: "outside range", team: "liverpool", minYear: 1950, maxYear: 2000, wantOK: false},
		{name: "unknown team", team: "arsenal", minYear: 1900, maxYear: 2000, wantOK: false},
		{name: "one season only", team: "ashington", minYear: 1900, maxYear: 2000, want: 7, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ds.AveragePosition(tt.team, tt.minYear, tt.maxYear)
			if ok != tt.wantOK {
				t.Fatalf("AveragePosition() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AveragePosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDataset_FilterTeams(t *testing.T) {
	ds := twoSeasons(t).Build()

	tests := []struct {
		query string
		want  []string
	}{
		{"county", []string{"notts-county", "stockport-county"}},
		{"HEATH", []string{"birmingham-city"}},
		{"nobody", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ds.FilterTeams(tt.query)); diff != "" {
				t.Errorf("FilterTeams(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}

	if got := len(ds.FilterTeams("")); got != len(ds.Teams) {
		t.Errorf("FilterTeams(\"\") returned %d teams, want %d", got, len(ds.Teams))
	}
}

func TestDataset_EmptyBuild(t *testing.T) {
	ds := NewBuilder(nil).Build()

	if len(ds.Seasons) != 0 || len(ds.Teams) != 0 || len(ds.TierSizes) != 0 {
		t.Errorf("empty build = %+v, want empty dataset", ds)
	}
	if first, last := ds.SeasonRange(); first != "" || last != "" {
		t.Errorf("SeasonRange() = (%q, %q), want empty", first, last)
	}
}
