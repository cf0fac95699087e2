// Package storage persists season pages, parsed divisions and the chart
// dataset on local disk.
//
// Layout under the data directory (default ~/.local/share/yo-yo):
//
//	pages/1888-89.txt               text extracted from the RSSSF page
//	divisions/1888-89.json          divisions parsed from that text
//	football-league-positions.json  the merged chart dataset
//
// Cached pages let a run be repeated offline, and let the parser be re-run
// without fetching the archive again.
package storage
