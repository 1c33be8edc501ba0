// Package dataset loads observation samples for analysis: inline values, a
// local CSV file, or CSV fetched over HTTP. It yields only the in-memory
// sequence; per-family support validation belongs to the model packages.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/priorlab/conjugate/internal/errors"
)

// Source addresses an observation sample. Exactly one field must be set.
type Source struct {
	Inline []float64 `json:"inline,omitempty"`
	Path   string    `json:"path,omitempty"`
	URL    string    `json:"url,omitempty"`
}

// String names the source for logging
func (s Source) String() string {
	switch {
	case s.URL != "":
		return s.URL
	case s.Path != "":
		return s.Path
	case s.Inline != nil:
		return fmt.Sprintf("inline[n=%d]", len(s.Inline))
	default:
		return "unset"
	}
}

// Loader resolves Sources into samples
type Loader struct {
	fetcher *Fetcher
}

// NewLoader creates a loader. The fetcher may be nil if URL sources are
// never used.
func NewLoader(fetcher *Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load resolves the source into an ordered sample. The returned slice is
// owned by the caller; inline values are copied so later mutation of the
// source cannot alias the sample.
func (l *Loader) Load(ctx context.Context, src Source) ([]float64, error) {
	set := 0
	if src.Inline != nil {
		set++
	}
	if src.Path != "" {
		set++
	}
	if src.URL != "" {
		set++
	}
	if set != 1 {
		return nil, errors.NewInvalidParameter("exactly one of inline, path or url must be set")
	}

	switch {
	case src.Inline != nil:
		return append([]float64(nil), src.Inline...), nil
	case src.Path != "":
		return l.loadFile(src.Path)
	default:
		if l.fetcher == nil {
			return nil, errors.NewInvalidParameter("no fetcher configured for url sources", src.URL)
		}
		return l.fetcher.FetchCSV(ctx, src.URL)
	}
}

func (l *Loader) loadFile(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, "open dataset %s", path)
	}
	defer errors.SafeClose(file, path)

	return ParseCSV(file)
}

// ParseCSV reads the first column of a delimited text resource into an
// ordered sample. A single non-numeric header row is tolerated; any other
// non-numeric cell fails with InvalidInput.
func ParseCSV(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var sample []float64
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInvalidInput("malformed CSV record", err.Error())
		}
		row++

		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			// tolerate a header row, nothing else
			if row == 1 {
				continue
			}
			return nil, errors.NewInvalidInput("non-numeric value in CSV", record[0])
		}
		sample = append(sample, v)
	}

	return sample, nil
}
