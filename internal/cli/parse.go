package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/yo-yo/internal/rsssf"
	"github.com/pfrederiksen/yo-yo/internal/scraper"
)

var (
	flagTier int
	flagHTML bool
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Extract league tables from one season's text",
		Long: `Extract league tables from the text of one RSSSF season page, read from
a file or standard input. Exits with status 2 when no tables are found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().IntVar(&flagTier, "tier", 1, "Tier of the first table in the text")
	cmd.Flags().BoolVar(&flagHTML, "html", false, "Input is an HTML page; read the text of its <pre> blocks")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	if flagTier < 1 {
		return fmt.Errorf("--tier must be at least 1, got %d", flagTier)
	}

	var input io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error closing file: %v\n", err)
			}
		}()
		input = f
	}

	text, err := readText(input, flagHTML)
	if err != nil {
		return err
	}

	var parser rsssf.Parser
	divisions, next := parser.Parse(text, flagTier)

	result := &ParseResult{
		Divisions: divisions,
		NextTier:  next,
		Warnings:  parser.Warnings,
	}
	if err := WriteParseResult(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if len(divisions) == 0 {
		return errNoTables
	}
	return nil
}

func readText(r io.Reader, html bool) (string, error) {
	if html {
		text, err := scraper.PageText(r, "")
		if err != nil {
			return "", fmt.Errorf("reading page: %w", err)
		}
		return text, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
