// Package cli implements the yo-yo command-line interface.
//
// The cli package provides the Cobra-based commands: parse (one season's text
// to divisions), fetch (a range of seasons to the chart dataset), teams
// (search the dataset and report average positions) and season (year to
// season notation). It coordinates the config, scraper, storage, pipeline and
// dataset packages.
package cli
