// Package pipeline turns a range of seasons into the chart dataset: pages are
// taken from the cache or fetched, parsed into divisions, saved, and merged.
package pipeline
