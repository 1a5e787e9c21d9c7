// Package store persists the observation table as a flat CSV file.
//
// The table is append-only: rows are never mutated or deleted once persisted,
// and insertion order is the iteration order the UI charts in. Every persist
// rewrites the whole file through a temp-file-and-rename so a concurrent
// reader of the same path never sees a partial table. Derived label columns
// are stored verbatim and are not recomputed on load.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/park-conditions/internal/domain"
)

// header is the fixed column schema. Column names and order are part of the
// on-disk contract and must not change.
var header = []string{
	"date",
	"Rainfall_mm",
	"Condition",
	"Landslide_Risk",
	"PM2.5",
	"PM10",
	"AQI",
	"Air_Quality",
	"Vegetation_Air_Risk",
	"pH",
	"pH_Level",
	"Vegetation_pH_Risk",
}

const dateLayout = "2006-01-02"

// Table is an ordered, append-only collection of observations. Operations on
// a Table return new values; existing rows are never touched.
type Table []domain.Observation

// Append returns a new table with obs as its last row. The receiver and its
// rows are left unchanged.
func (t Table) Append(obs domain.Observation) Table {
	out := make(Table, len(t), len(t)+1)
	copy(out, t)
	return append(out, obs)
}

// Store reads and writes the observation table at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a Store persisting to path.
func New(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the storage location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted table. A missing file is not an error and yields
// an empty table; a malformed file is an error, which callers treat as fatal
// at startup rather than silently discarding history.
func (s *Store) Load() (Table, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("no observation file found, starting empty", "path", s.path)
		return Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open observation file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read observation file %s: %w", s.path, err)
	}
	if len(records) == 0 {
		// A present-but-empty file is treated like a fresh one.
		return Table{}, nil
	}

	if err := checkHeader(records[0]); err != nil {
		return nil, fmt.Errorf("observation file %s: %w", s.path, err)
	}

	table := make(Table, 0, len(records)-1)
	for i, rec := range records[1:] {
		obs, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("observation file %s row %d: %w", s.path, i+2, err)
		}
		table = append(table, obs)
	}

	s.logger.Info("observation table loaded", "path", s.path, "rows", len(table))
	return table, nil
}

// Persist writes the full table to storage, replacing any previous content.
// The data is written to a temp file in the same directory and renamed into
// place, so a concurrent reader sees either the old table or the new one.
func (s *Store) Persist(table Table) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp observation file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write observation header: %w", err)
	}
	for _, obs := range table {
		if err := w.Write(encodeRow(obs)); err != nil {
			tmp.Close()
			return fmt.Errorf("write observation row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush observation file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp observation file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace observation file: %w", err)
	}
	return nil
}

func checkHeader(got []string) error {
	if len(got) != len(header) {
		return fmt.Errorf("malformed header: %d columns, want %d", len(got), len(header))
	}
	for i, name := range header {
		if got[i] != name {
			return fmt.Errorf("malformed header: column %d is %q, want %q", i+1, got[i], name)
		}
	}
	return nil
}

func encodeRow(obs domain.Observation) []string {
	return []string{
		obs.Date.Format(dateLayout),
		formatFloat(obs.RainfallMM),
		string(obs.Condition),
		string(obs.LandslideRisk),
		formatFloat(obs.PM25),
		formatFloat(obs.PM10),
		strconv.Itoa(obs.AQI),
		string(obs.AirQuality),
		string(obs.VegetationAirRisk),
		formatFloat(obs.PH),
		string(obs.PHLevel),
		string(obs.VegetationPHRisk),
	}
}

func decodeRow(rec []string) (domain.Observation, error) {
	if len(rec) != len(header) {
		return domain.Observation{}, fmt.Errorf("malformed row: %d columns, want %d", len(rec), len(header))
	}

	date, err := time.Parse(dateLayout, rec[0])
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parse date %q: %w", rec[0], err)
	}
	rainfall, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parse Rainfall_mm %q: %w", rec[1], err)
	}
	pm25, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parse PM2.5 %q: %w", rec[4], err)
	}
	pm10, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parse PM10 %q: %w", rec[5], err)
	}
	aqi, err := strconv.Atoi(rec[6])
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parse AQI %q: %w", rec[6], err)
	}
	ph, err := strconv.ParseFloat(rec[9], 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parse pH %q: %w", rec[9], err)
	}

	return domain.Observation{
		Date:              date,
		RainfallMM:        rainfall,
		Condition:         domain.Condition(rec[2]),
		LandslideRisk:     domain.RiskLevel(rec[3]),
		PM25:              pm25,
		PM10:              pm10,
		AQI:               aqi,
		AirQuality:        domain.AirQuality(rec[7]),
		VegetationAirRisk: domain.RiskLevel(rec[8]),
		PH:                ph,
		PHLevel:           domain.PHLevel(rec[10]),
		VegetationPHRisk:  domain.RiskLevel(rec[11]),
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
