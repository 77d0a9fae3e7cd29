package gdp

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "collegetowns/internal/errors"
	"collegetowns/internal/quarter"
	"collegetowns/internal/types"
)

// LoadOptions describes where the quarterly block sits in the workbook.
type LoadOptions struct {
	Sheet      string        // empty means the first sheet
	HeaderRows int           // rows above the column-title row
	Start      quarter.Label // earliest quarter kept
}

// DefaultLoadOptions matches the BEA gdplev layout and the 2000q1 cut-off.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{HeaderRows: 5, Start: "2000q1"}
}

// Load reads the quarterly GDP block from the workbook at path and returns the
// series from opts.Start onward in chronological order.
func Load(path string, opts LoadOptions) ([]types.GDPPoint, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewFileNotFoundError(path, err)
		}
		return nil, apperrors.NewParseError("open workbook "+path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("read sheet %q", sheet), err).WithContext("path", path)
	}
	return parseRows(rows, opts)
}

func parseRows(rows [][]string, opts LoadOptions) ([]types.GDPPoint, error) {
	if len(rows) <= opts.HeaderRows {
		return nil, apperrors.NewParseError(fmt.Sprintf("workbook has %d rows, expected a header after row %d", len(rows), opts.HeaderRows), nil)
	}
	currentCol, chainedCol := -1, -1
	for i, title := range rows[opts.HeaderRows] {
		title = strings.ToLower(title)
		// The quarterly block follows the annual one, so the last match wins.
		if strings.Contains(title, "current dollars") {
			currentCol = i
		}
		if strings.Contains(title, "chained") {
			chainedCol = i
		}
	}
	if currentCol < 0 || chainedCol < 0 {
		return nil, apperrors.NewParseError("gdp header lacks current-dollar and chained-dollar columns", nil).
			WithContext("header", rows[opts.HeaderRows])
	}

	var series []types.GDPPoint
	for n, row := range rows[opts.HeaderRows+1:] {
		q, ok := quarterCell(row)
		if !ok || q.Before(opts.Start) {
			continue
		}
		rowNum := opts.HeaderRows + n + 2 // 1-based sheet row
		current, err := cellFloat(row, currentCol)
		if err != nil {
			return nil, apperrors.NewParseError(fmt.Sprintf("row %d (%s): current-dollar gdp", rowNum, q), err)
		}
		chained, err := cellFloat(row, chainedCol)
		if err != nil {
			return nil, apperrors.NewParseError(fmt.Sprintf("row %d (%s): chained gdp", rowNum, q), err)
		}
		series = append(series, types.GDPPoint{Quarter: q, Current: current, Chained: chained})
	}
	if len(series) == 0 {
		return nil, apperrors.NewParseError(fmt.Sprintf("no quarterly gdp rows at or after %s", opts.Start), nil)
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].Quarter.Before(series[j].Quarter) })
	return series, nil
}

// quarterCell returns the first cell of row holding a quarter label.
func quarterCell(row []string) (quarter.Label, bool) {
	for _, cell := range row {
		if c := strings.TrimSpace(cell); quarter.Valid(c) {
			return quarter.Label(c), true
		}
	}
	return "", false
}

func cellFloat(row []string, col int) (float64, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("missing cell in column %d", col+1)
	}
	s := strings.ReplaceAll(strings.TrimSpace(row[col]), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty cell in column %d", col+1)
	}
	return strconv.ParseFloat(s, 64)
}
