package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/yo-yo/internal/dataset"
	"github.com/pfrederiksen/yo-yo/internal/league"
)

const (
	pagesDir     = "pages"
	divisionsDir = "divisions"
	DatasetFile  = "football-league-positions.json"
)

// ErrNoDataset is returned by LoadDataset when no dataset has been saved.
var ErrNoDataset = errors.New("no dataset saved")

// Storage handles persistence under a data directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	for _, dir := range []string{dataDir, filepath.Join(dataDir, pagesDir), filepath.Join(dataDir, divisionsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the expanded data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

func (s *Storage) pagePath(season string) string {
	return filepath.Join(s.dataDir, pagesDir, season+".txt")
}

func (s *Storage) divisionsPath(season string) string {
	return filepath.Join(s.dataDir, divisionsDir, season+".json")
}

// DatasetPath returns the path of the chart dataset file.
func (s *Storage) DatasetPath() string {
	return filepath.Join(s.dataDir, DatasetFile)
}

// LoadPage returns the cached text for a season. ok is false when the season
// has not been cached.
func (s *Storage) LoadPage(season string) (text string, ok bool, err error) {
	if err := validSeason(season); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(s.pagePath(season))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading page: %w", err)
	}
	return string(data), true, nil
}

// SavePage caches the text for a season.
func (s *Storage) SavePage(season, text string) error {
	if err := validSeason(season); err != nil {
		return err
	}
	if err := writeFile(s.pagePath(season), []byte(text)); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}

// LoadDivisions returns the parsed divisions saved for a season. ok is false
// when none were saved.
func (s *Storage) LoadDivisions(season string) (divisions []league.Division, ok bool, err error) {
	if err := validSeason(season); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.divisionsPath(season))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading divisions: %w", err)
	}

	if err := json.Unmarshal(data, &divisions); err != nil {
		return nil, false, fmt.Errorf("parsing divisions: %w", err)
	}
	return divisions, true, nil
}

// SaveDivisions writes the parsed divisions of a season.
func (s *Storage) SaveDivisions(season string, divisions []league.Division) error {
	if err := validSeason(season); err != nil {
		return err
	}

	data, err := json.MarshalIndent(divisions, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding divisions: %w", err)
	}
	if err := writeFile(s.divisionsPath(season), data); err != nil {
		return fmt.Errorf("writing divisions: %w", err)
	}
	return nil
}

// LoadDataset reads the chart dataset, or returns ErrNoDataset.
func (s *Storage) LoadDataset() (*dataset.Dataset, error) {
	data, err := os.ReadFile(s.DatasetPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDataset
		}
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds dataset.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if ds.Teams == nil {
		ds.Teams = make(map[string][]string)
	}
	return &ds, nil
}

// SaveDataset writes the chart dataset.
func (s *Storage) SaveDataset(ds *dataset.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := writeFile(s.DatasetPath(), data); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}

// CachedSeasons returns the seasons with a cached page, in order.
func (s *Storage) CachedSeasons() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, pagesDir))
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	seasons := make([]string, 0, len(entries))
	for _, e := range entries {
		season, ok := strings.CutSuffix(e.Name(), ".txt")
		if !ok || e.IsDir() || validSeason(season) != nil {
			continue
		}
		seasons = append(seasons, season)
	}
	return seasons, nil
}

// writeFile replaces path atomically.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// validSeason guards file names built from a season string.
func validSeason(season string) error {
	if _, err := league.ParseSeason(season); err != nil {
		return fmt.Errorf("invalid season key: %w", err)
	}
	return nil
}
