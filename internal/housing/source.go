package housing

import (
	"context"
	"encoding/csv"
	"os"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/states"
)

// Source yields the wide city table as a header plus records.
type Source interface {
	Load(ctx context.Context) (header []string, records [][]string, err error)
}

// CSVSource reads the table from a CSV file.
type CSVSource struct {
	Path string
}

// Load implements Source.
func (s CSVSource) Load(ctx context.Context) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return LoadCSV(s.Path)
}

// LoadCSV reads the header and all records of the CSV at path.
func LoadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewFileNotFoundError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // trailing months may be missing on short rows
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, apperrors.NewParseError("read csv "+path, err)
	}
	if len(rows) == 0 {
		return nil, nil, apperrors.NewParseError("csv "+path+" is empty", nil)
	}
	return rows[0], rows[1:], nil
}

// LoadTable loads src and reshapes it.
func LoadTable(ctx context.Context, src Source, names states.Names) (*Table, error) {
	header, records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Reshape(header, records, names)
}
