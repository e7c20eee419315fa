package engine

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"backend/internal/models"

	"github.com/jszwec/csvutil"
)

// Load builds the Dataset from one results CSV per election year.
//
// For each year the candidate directories are probed in order and the first
// hit wins. A file missing from every directory is a warning, not an error:
// that year is simply absent from the dataset. A file that exists but cannot
// be parsed is a real initialization failure and aborts the load.
//
// Zero successfully loaded years still yields a valid (empty) Dataset.
func Load(dirs []string, yearFiles map[string]string) (*Dataset, error) {
	start := time.Now()

	ds := &Dataset{tables: make(map[string]*YearTable), years: make([]string, 0, len(yearFiles))}

	// Deterministic probe order for logs and error reporting.
	years := make([]string, 0, len(yearFiles))
	for year := range yearFiles {
		years = append(years, year)
	}
	sort.Strings(years)

	for _, year := range years {
		name := yearFiles[year]

		path := ""
		for _, dir := range dirs {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			log.Printf("WARN: %s not found in any data directory, skipping year %s", name, year)
			continue
		}

		table, err := loadYearTable(path, year)
		if err != nil {
			return nil, fmt.Errorf("loading year %s from %s: %w", year, path, err)
		}
		ds.tables[year] = table
		ds.years = append(ds.years, year)
	}

	sort.Strings(ds.years)
	ds.buildIndexes()

	log.Printf("Loaded %d election years in %v: %s",
		len(ds.years), time.Since(start), strings.Join(ds.years, ", "))
	return ds, nil
}

// loadYearTable parses one results CSV into a YearTable.
//
// The header row is read first and every column name is trimmed; headers are
// the field selectors downstream and stray whitespace in the source files
// would otherwise silently detach a whole column.
func loadYearTable(path, year string) (*YearTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]bool, len(header))
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		columns[header[i]] = true
	}

	dec, err := csvutil.NewDecoder(r, header...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	var rows []models.Result
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode CSV rows: %w", err)
	}

	return &YearTable{Year: year, Rows: rows, columns: columns}, nil
}
