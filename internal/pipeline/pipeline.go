package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pfrederiksen/yo-yo/internal/dataset"
	"github.com/pfrederiksen/yo-yo/internal/league"
	"github.com/pfrederiksen/yo-yo/internal/logger"
	"github.com/pfrederiksen/yo-yo/internal/rsssf"
	"github.com/pfrederiksen/yo-yo/internal/storage"
)

// Metric names recorded during a run.
const (
	MetricSeasonsCached   = "seasons.cached"
	MetricSeasonsFetched  = "seasons.fetched"
	MetricSeasonsMissing  = "seasons.missing"
	MetricSeasonsNoTables = "seasons.no_tables"
	MetricSeasonsReused   = "seasons.reused"
	MetricDivisionsParsed = "divisions.parsed"
	MetricParseWarnings   = "parse.warnings"
	MetricFetchTiming     = "fetch"
	MetricParseTiming     = "parse"
)

// Every season page starts with the top division.
const firstTier = 1

// Fetcher downloads season text by starting year. Seasons without a page are
// left out of the result.
type Fetcher interface {
	FetchSeasons(ctx context.Context, years []int, concurrency int) (map[int]string, error)
}

// Options selects what a run does.
type Options struct {
	Years       []int // empty means every season with a cached page
	Offline     bool  // never fetch; use cached pages only
	Refresh     bool  // fetch even when a page is cached
	Reparse     bool  // parse cached pages even when their divisions are saved
	Concurrency int
	Aliases     map[string]string
}

// Report summarises a run.
type Report struct {
	SeasonsCached   int `json:"seasons_cached"`
	SeasonsFetched  int `json:"seasons_fetched"`
	SeasonsMissing  int `json:"seasons_missing"`
	SeasonsNoTables int `json:"seasons_no_tables"`
	SeasonsReused   int `json:"seasons_reused"`
	SeasonsCharted  int `json:"seasons_charted"`
	Divisions       int `json:"divisions"`
	Warnings        int `json:"warnings"`
}

// Pipeline runs seasons through fetch, parse and aggregation.
type Pipeline struct {
	fetcher Fetcher
	store   *storage.Storage
	log     *logger.Logger
	metrics *logger.Metrics
}

// New creates a pipeline. fetcher may be nil for offline runs.
func New(fetcher Fetcher, store *storage.Storage, log *logger.Logger, metrics *logger.Metrics) *Pipeline {
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = logger.NewMetrics()
	}
	return &Pipeline{fetcher: fetcher, store: store, log: log, metrics: metrics}
}

// Run processes opts.Years and saves the resulting dataset. Pages fetched
// before a fetch error are cached before the error is returned.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*dataset.Dataset, *Report, error) {
	report := &Report{}

	if len(opts.Years) == 0 {
		years, err := p.cachedYears()
		if err != nil {
			return nil, report, err
		}
		opts.Years = years
	}

	pages, cached, err := p.collectPages(ctx, opts, report)
	if err != nil {
		return nil, report, err
	}

	builder := dataset.NewBuilder(opts.Aliases)

	for _, year := range opts.Years {
		text, ok := pages[year]
		if !ok {
			continue
		}
		if cached[year] && !opts.Reparse {
			reused, err := p.reuseSeason(year, builder, report)
			if err != nil {
				return nil, report, err
			}
			if reused {
				continue
			}
		}
		if err := p.parseSeason(year, text, builder, report); err != nil {
			return nil, report, err
		}
	}

	ds := builder.Build()
	if err := p.store.SaveDataset(ds); err != nil {
		return nil, report, fmt.Errorf("saving dataset: %w", err)
	}

	p.log.Info("Dataset saved", logger.Fields{
		"path":    p.store.DatasetPath(),
		"teams":   len(ds.Teams),
		"seasons": builder.Len(),
	})

	return ds, report, nil
}

// cachedYears returns the starting years of every cached page.
func (p *Pipeline) cachedYears() ([]int, error) {
	seasons, err := p.store.CachedSeasons()
	if err != nil {
		return nil, err
	}

	years := make([]int, 0, len(seasons))
	for _, season := range seasons {
		year, err := league.ParseSeason(season)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// collectPages returns the text of every season that has a page, reading the
// cache first and fetching the rest. cached marks the seasons read from the
// cache.
func (p *Pipeline) collectPages(ctx context.Context, opts Options, report *Report) (pages map[int]string, cached map[int]bool, err error) {
	pages = make(map[int]string, len(opts.Years))
	cached = make(map[int]bool, len(opts.Years))
	var toFetch []int

	for _, year := range opts.Years {
		season := league.YearToSeason(year)

		if !opts.Refresh {
			text, ok, err := p.store.LoadPage(season)
			if err != nil {
				return nil, nil, fmt.Errorf("loading page %s: %w", season, err)
			}
			if ok {
				pages[year] = text
				cached[year] = true
				report.SeasonsCached++
				p.metrics.IncrCounter(MetricSeasonsCached)
				continue
			}
		}

		if opts.Offline || p.fetcher == nil {
			report.SeasonsMissing++
			p.metrics.IncrCounter(MetricSeasonsMissing)
			p.log.Debug("Season not cached", logger.Fields{"season": season})
			continue
		}
		toFetch = append(toFetch, year)
	}

	if len(toFetch) == 0 {
		return pages, cached, nil
	}

	p.log.Info("Fetching seasons", logger.Fields{
		"count":       len(toFetch),
		"concurrency": opts.Concurrency,
	})

	start := time.Now()
	fetched, fetchErr := p.fetcher.FetchSeasons(ctx, toFetch, opts.Concurrency)
	p.metrics.RecordTiming(MetricFetchTiming, time.Since(start))

	for _, year := range toFetch {
		season := league.YearToSeason(year)

		text, ok := fetched[year]
		if !ok {
			if fetchErr == nil {
				report.SeasonsMissing++
				p.metrics.IncrCounter(MetricSeasonsMissing)
				p.log.Info("No page for season", logger.Fields{"season": season})
			}
			continue
		}

		if err := p.store.SavePage(season, text); err != nil {
			return nil, nil, fmt.Errorf("caching page %s: %w", season, err)
		}
		pages[year] = text
		report.SeasonsFetched++
		p.metrics.IncrCounter(MetricSeasonsFetched)
	}

	if fetchErr != nil {
		return nil, nil, fmt.Errorf("fetching seasons: %w", fetchErr)
	}
	return pages, cached, nil
}

// reuseSeason adds the divisions saved for a cached season. It reports false
// when none were saved.
func (p *Pipeline) reuseSeason(year int, builder *dataset.Builder, report *Report) (bool, error) {
	season := league.YearToSeason(year)

	divisions, ok, err := p.store.LoadDivisions(season)
	if err != nil {
		return false, fmt.Errorf("loading divisions %s: %w", season, err)
	}
	if !ok || len(divisions) == 0 {
		return false, nil
	}
	if err := builder.Add(season, divisions); err != nil {
		return false, err
	}

	report.SeasonsReused++
	report.SeasonsCharted++
	report.Divisions += len(divisions)
	p.metrics.IncrCounter(MetricSeasonsReused)
	p.log.Debug("Reused saved divisions", logger.Fields{"season": season, "divisions": len(divisions)})
	return true, nil
}

func (p *Pipeline) parseSeason(year int, text string, builder *dataset.Builder, report *Report) error {
	season := league.YearToSeason(year)
	log := p.log.With(logger.Fields{"season": season})

	var parser rsssf.Parser
	start := time.Now()
	divisions, next := parser.Parse(text, firstTier)
	p.metrics.RecordTiming(MetricParseTiming, time.Since(start))

	for _, w := range parser.Warnings {
		log.Warn("Lossy table row", logger.Fields{"line": w.Line, "text": w.Text, "reason": w.Message})
	}
	report.Warnings += len(parser.Warnings)
	p.metrics.AddCounter(MetricParseWarnings, int64(len(parser.Warnings)))

	if len(divisions) == 0 {
		report.SeasonsNoTables++
		p.metrics.IncrCounter(MetricSeasonsNoTables)
		log.Info("No tables in season", nil)
		return nil
	}

	if err := p.store.SaveDivisions(season, divisions); err != nil {
		return fmt.Errorf("saving divisions %s: %w", season, err)
	}
	if err := builder.Add(season, divisions); err != nil {
		return err
	}

	report.SeasonsCharted++
	report.Divisions += len(divisions)
	p.metrics.AddCounter(MetricDivisionsParsed, int64(len(divisions)))

	log.Debug("Parsed season", logger.Fields{
		"divisions": len(divisions),
		"tiers":     next - firstTier,
	})
	return nil
}
