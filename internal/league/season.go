package league

import (
	"fmt"
	"strconv"
	"strings"
)

// YearToSeason returns the season notation for the season starting in year.
//
//	YearToSeason(1888) // "1888-89"
//	YearToSeason(1999) // "1999-00"
func YearToSeason(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// ParseSeason returns the starting year of a season written as "1888-89".
func ParseSeason(season string) (int, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(season), "-")
	if !ok || len(end) != 2 {
		return 0, fmt.Errorf("invalid season %q: want YYYY-YY", season)
	}

	year, err := strconv.Atoi(start)
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", season, err)
	}
	if YearToSeason(year) != strings.TrimSpace(season) {
		return 0, fmt.Errorf("invalid season %q: years are not consecutive", season)
	}

	return year, nil
}

// EndYear returns the calendar year in which the season finished.
func EndYear(season string) (int, error) {
	year, err := ParseSeason(season)
	if err != nil {
		return 0, err
	}
	return year + 1, nil
}
