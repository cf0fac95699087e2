package dataset

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/pfrederiksen/yo-yo/internal/league"
)

// Builder accumulates parsed seasons.
type Builder struct {
	aliases map[string]string
	seasons map[int]seasonEntry
}

type seasonEntry struct {
	season    string
	year      int
	divisions []league.Division
}

// NewBuilder creates a builder. aliases maps a team name or slug to the ID
// it should be charted under.
func NewBuilder(aliases map[string]string) *Builder {
	normalized := make(map[string]string, len(aliases))
	for name, id := range aliases {
		normalized[strings.ToLower(strings.TrimSpace(name))] = id
	}
	return &Builder{
		aliases: normalized,
		seasons: make(map[int]seasonEntry),
	}
}

// Add records the divisions of a season, replacing any earlier call for the
// same season.
func (b *Builder) Add(season string, divisions []league.Division) error {
	year, err := league.ParseSeason(season)
	if err != nil {
		return fmt.Errorf("adding season: %w", err)
	}
	b.seasons[year] = seasonEntry{season: season, year: year, divisions: divisions}
	return nil
}

// Len returns the number of seasons added.
func (b *Builder) Len() int {
	return len(b.seasons)
}

// TeamID returns the chart ID for a team name.
func (b *Builder) TeamID(name string) string {
	if id, ok := b.aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id
	}
	slug := Slug(name)
	if id, ok := b.aliases[slug]; ok {
		return id
	}
	return slug
}

// Build merges the added seasons into a Dataset.
func (b *Builder) Build() *Dataset {
	entries := make([]seasonEntry, 0, len(b.seasons))
	for _, e := range b.seasons {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].year < entries[j].year })

	ds := &Dataset{
		Seasons:   []TeamSeasons{},
		Teams:     make(map[string][]string),
		Tiers:     make([]SeasonTiers, 0, len(entries)),
		TierSizes: []TierSizes{},
	}

	histories := make(map[string][]TeamSeason)
	names := make(map[string][]string) // oldest first
	sizes := make([]map[int]int, len(entries))
	maxTier := 0

	for i, e := range entries {
		sizes[i] = tierSizes(e.divisions)
		for tier := range sizes[i] {
			if tier > maxTier {
				maxTier = tier
			}
		}
		offsets := tierOffsets(sizes[i])

		summary := SeasonTiers{Season: e.season, Divisions: make([]DivisionSummary, 0, len(e.divisions))}
		seen := make(map[string]bool)

		for _, div := range e.divisions {
			summary.Divisions = append(summary.Divisions, DivisionSummary{
				Tier:  div.Tier,
				Title: div.Title(),
				Size:  div.Size(),
			})

			for _, row := range div.Table {
				id := b.TeamID(row.Team)
				if id == "" || seen[id] {
					continue
				}
				seen[id] = true

				histories[id] = append(histories[id], TeamSeason{
					Season:            e.season,
					Tier:              div.Tier,
					Division:          div.Title(),
					Position:          row.Pos,
					EffectivePosition: offsets[div.Tier] + row.Pos,
					Caps:              row.Caps,
					Stats:             row.Stats,
				})
				names[id] = appendName(names[id], row.Team)
			}
		}

		ds.Tiers = append(ds.Tiers, summary)
	}

	ids := make([]string, 0, len(histories))
	for id := range histories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ds.Seasons = append(ds.Seasons, TeamSeasons{Team: id, Seasons: histories[id]})
		ds.Teams[id] = mostRecentFirst(names[id])
	}

	for tier := 1; tier <= maxTier; tier++ {
		ts := TierSizes{Tier: tier, Seasons: make([]TierSize, 0, len(entries))}
		for i, e := range entries {
			ts.Seasons = append(ts.Seasons, TierSize{Season: e.season, Size: sizes[i][tier]})
		}
		ds.TierSizes = append(ds.TierSizes, ts)
	}

	return ds
}

// tierSizes returns the size of each tier, taking the largest division when
// regional divisions share a tier.
func tierSizes(divisions []league.Division) map[int]int {
	sizes := make(map[int]int)
	for _, d := range divisions {
		if d.Size() > sizes[d.Tier] {
			sizes[d.Tier] = d.Size()
		}
	}
	return sizes
}

// tierOffsets returns, for every tier, the number of places above it.
func tierOffsets(sizes map[int]int) map[int]int {
	maxTier := 0
	for tier := range sizes {
		if tier > maxTier {
			maxTier = tier
		}
	}

	offsets := make(map[int]int, maxTier)
	total := 0
	for tier := 1; tier <= maxTier; tier++ {
		offsets[tier] = total
		total += sizes[tier]
	}
	return offsets
}

// appendName records name as the latest one used, moving it to the end if
// the team was listed under it before.
func appendName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			names = append(names[:i], names[i+1:]...)
			break
		}
	}
	return append(names, name)
}

func mostRecentFirst(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[len(names)-1-i] = n
	}
	return out
}

// Slug turns a team name into an ID: lower case, "&" spelled out,
// apostrophes dropped and other punctuation collapsed to hyphens.
//
//	Slug("Brighton & Hove Albion") // "brighton-and-hove-albion"
//	Slug("Queen's Park Rangers")   // "queens-park-rangers"
func Slug(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), "&", " and ")
	name = strings.ReplaceAll(name, "'", "")

	var sb strings.Builder
	pendingHyphen := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return sb.String()
}
