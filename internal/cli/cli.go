package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/yo-yo/internal/config"
	"github.com/pfrederiksen/yo-yo/internal/league"
	"github.com/pfrederiksen/yo-yo/internal/logger"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNoTables = 2
)

// errNoTables makes parse exit with ExitNoTables.
var errNoTables = errors.New("no tables found")

var (
	flagConfig  string
	flagDataDir string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yo-yo",
		Short: "Chart English football league positions from RSSSF archives",
		Long: `A CLI tool to extract historical English league tables from RSSSF
season pages and build the dataset behind the league positions chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for pages and dataset (default from config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newParseCmd(),
		newFetchCmd(),
		newTeamsCmd(),
		newSeasonCmd(),
	)

	return cmd
}

func newSeasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "season <year>",
		Short: "Print the season notation for a starting year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), league.YearToSeason(year))
			return nil
		},
	}
}

// outputFormat validates the --format flag.
func outputFormat() (OutputFormat, error) {
	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	return cfg, nil
}

// setupLogger installs the default logger for the configured level, or debug
// when --verbose is set.
func setupLogger(cmd *cobra.Command, cfg config.Config) (*logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}

	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)
	return log, nil
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, errNoTables):
		os.Exit(ExitNoTables)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
