package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/yo-yo/internal/logger"
	"github.com/pfrederiksen/yo-yo/internal/pipeline"
	"github.com/pfrederiksen/yo-yo/internal/scraper"
	"github.com/pfrederiksen/yo-yo/internal/storage"
)

var (
	flagFrom        int
	flagTo          int
	flagOffline     bool
	flagRefresh     bool
	flagReparse     bool
	flagConcurrency int
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and parse a range of seasons into the chart dataset",
		Long: `Fetch RSSSF season pages (or reuse cached copies), extract their league
tables and write football-league-positions.json to the data directory.

With --offline and no --from/--to, every cached season is charted.`,
		Args: cobra.NoArgs,
		RunE: runFetch,
	}

	cmd.Flags().IntVar(&flagFrom, "from", 0, "First season, by starting year (default from config)")
	cmd.Flags().IntVar(&flagTo, "to", 0, "Last season, by starting year (default from config)")
	cmd.Flags().BoolVar(&flagOffline, "offline", false, "Use cached pages only")
	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Fetch pages even when cached")
	cmd.Flags().BoolVar(&flagReparse, "reparse", false, "Parse cached pages again instead of reusing saved divisions")
	cmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Pages fetched at once (default from config)")

	cmd.MarkFlagsMutuallyExclusive("offline", "refresh")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagFrom > 0 {
		cfg.StartYear = flagFrom
	}
	if flagTo > 0 {
		cfg.EndYear = flagTo
	}
	if flagConcurrency > 0 {
		cfg.Concurrency = flagConcurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := setupLogger(cmd, cfg)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}
	sc := scraper.New(
		scraper.WithURLTemplate(cfg.SourceURL),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithTimeout(timeout),
		scraper.WithMaxRetries(cfg.MaxRetries),
		scraper.WithLogger(log),
	)

	// Offline runs without an explicit range chart whatever is cached.
	years := cfg.Years()
	if flagOffline && !cmd.Flags().Changed("from") && !cmd.Flags().Changed("to") {
		years = nil
	}

	logger.Debug("Config loaded", logger.Fields{
		"source_url":  cfg.SourceURL,
		"timeout":     timeout.String(),
		"max_retries": cfg.MaxRetries,
		"aliases":     len(cfg.Aliases),
	})
	logger.Info("Building dataset", logger.Fields{
		"from":     cfg.StartYear,
		"to":       cfg.EndYear,
		"cached":   years == nil,
		"data_dir": store.Dir(),
		"offline":  flagOffline,
	})

	metrics := logger.NewMetrics()
	p := pipeline.New(sc, store, log, metrics)

	_, report, err := p.Run(cmd.Context(), pipeline.Options{
		Years:       years,
		Offline:     flagOffline,
		Refresh:     flagRefresh,
		Reparse:     flagReparse,
		Concurrency: cfg.Concurrency,
		Aliases:     cfg.Aliases,
	})
	if err != nil {
		logger.Error("Run failed", metrics.Snapshot().Fields(), err)
		return fmt.Errorf("building dataset: %w", err)
	}

	if report.Warnings > 0 {
		logger.Warn("Some table rows were coerced or skipped", logger.Fields{"warnings": report.Warnings})
	}
	logger.Info("Run metrics", metrics.Snapshot().Fields())

	result := &FetchResult{
		Report:      report,
		DatasetPath: store.DatasetPath(),
	}
	if err := WriteFetchResult(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
