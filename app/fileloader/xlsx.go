package fileloader

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"planillas/app/export"
	"planillas/app/record"
)

// Workbook reading. A workbook written by the export can be loaded back as
// a dataset: columns are matched by header, either the export label
// ("Organismo") or the field configuration name ("organization").

// zipMagic starts every xlsx file
var zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// IsWorkbook reports whether data looks like an xlsx archive
func IsWorkbook(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

var workbookHeaders = func() map[string]int {
	m := make(map[string]int, 2*len(export.Columns))
	for _, c := range export.Columns {
		m[strings.ToLower(c.Header)] = c.Field
		m[record.FieldKey(c.Field)] = c.Field
	}
	return m
}()

// workbookFields maps each header cell to a field index, -1 for columns
// that are not part of the row layout
func workbookFields(header []string) ([]int, error) {
	fields := make([]int, len(header))
	known := 0
	for i, h := range header {
		idx, ok := workbookHeaders[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			fields[i] = -1
			continue
		}
		fields[i] = idx
		known++
	}
	if known == 0 {
		return nil, fmt.Errorf("no known columns in header row")
	}
	return fields, nil
}

// workbookCell types a raw cell: empty is absent, anything that parses as
// a number is numeric, the rest is text
func workbookCell(raw string) record.Value {
	if raw == "" {
		return record.Absent
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return record.Number(n)
	}
	return record.String(raw)
}

// parseWorkbook streams the first sheet of an xlsx payload into rows
func parseWorkbook(data []byte) ([][]record.Value, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	defer rows.Close()

	var (
		fields []int
		out    [][]record.Value
	)
	for rows.Next() {
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if fields == nil {
			if fields, err = workbookFields(cells); err != nil {
				return nil, err
			}
			continue
		}
		values := make([]record.Value, record.FieldCount)
		for i, raw := range cells {
			if i < len(fields) && fields[i] >= 0 {
				values[fields[i]] = workbookCell(raw)
			}
		}
		out = append(out, values)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if fields == nil {
		return nil, fmt.Errorf("no rows found in workbook")
	}
	return out, nil
}
