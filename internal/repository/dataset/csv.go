package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmarsiglia/habitai/internal/domain"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// CSVSource reads the dataset file on every Load.
type CSVSource struct {
	path string
}

// NewCSV creates a CSV dataset source.
func NewCSV(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load opens and parses the whole file.
func (s *CSVSource) Load(ctx context.Context) ([]neighborhood.Neighborhood, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load csv: %w", err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, domain.NewDataIntegrity(s.path, 0, "", "unreadable: "+err.Error())
	}
	defer f.Close()

	return ReadCSV(f, s.path)
}

// ReadCSV parses a dataset from r. Columns are matched by header name; extra
// columns are ignored.
func ReadCSV(r io.Reader, source string) ([]neighborhood.Neighborhood, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewDataIntegrity(source, 0, "", "empty file")
	}
	if err != nil {
		return nil, domain.NewDataIntegrity(source, 1, "", "unreadable header: "+err.Error())
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range Columns() {
		if _, ok := index[col]; !ok {
			return nil, domain.NewDataIntegrity(source, 0, col, "missing column")
		}
	}

	var out []neighborhood.Neighborhood
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewDataIntegrity(source, line, "", "malformed row: "+err.Error())
		}

		n, err := parseRow(source, line, func(col string) (string, bool) {
			i := index[col]
			if i >= len(rec) {
				return "", false
			}
			return rec[i], true
		})
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// WriteCSV writes rows with the dataset header.
func WriteCSV(w io.Writer, rows []neighborhood.Neighborhood) error {
	cw := csv.NewWriter(w)
	cols := Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(cols))
	for _, n := range rows {
		fields := toFields(n)
		for i, c := range cols {
			rec[i] = fields[c]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %q: %w", n.Name(), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
