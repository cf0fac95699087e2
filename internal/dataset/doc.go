// Package dataset merges parsed seasons into the chart dataset.
//
// The chart front end draws one line per team through its overall league
// position season by season, over a stacked area showing the size of each
// tier. Builder collects the divisions of each season and Build produces:
//
//   - Seasons: per team, the ordered list of season records with the team's
//     tier, position and effective (overall) position;
//   - Teams: per team ID, every name the team was listed under, most recent
//     first;
//   - Tiers: per season, a summary of its divisions;
//   - TierSizes: per tier, the number of teams in every season, aligned
//     across tiers for stacking.
//
// Team IDs are slugs of the normalised team name ("queens-park-rangers"),
// optionally overridden with aliases so renamed clubs stay on one line
// ("Small Heath" -> "birmingham-city").
package dataset
