// Package league defines the season, division and table-row types shared by
// the RSSSF parser, the dataset builder and the CLI.
//
// A Division is one ranked table for one season at one tier of the English
// league pyramid. Rows serialise to JSON as positional arrays
// ([caps, pos, team, stat, ...]) so the stored data keeps the compact shape
// the chart front end reads.
package league
