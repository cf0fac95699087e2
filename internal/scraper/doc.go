// Package scraper fetches RSSSF season pages and returns their plain text.
//
// Each English league season lives on its own page, addressed by season
// notation ("1888-89"). Tables are published inside <pre> blocks, so the
// scraper returns the text of those blocks, decoded to UTF-8 whatever
// encoding the page declares. Server errors are retried with exponential
// backoff; a missing page is reported as ErrSeasonNotFound without retrying,
// since some seasons (the wartime years) were never played.
package scraper
