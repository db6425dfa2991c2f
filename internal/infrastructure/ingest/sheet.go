package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is the raw cell grid of one spreadsheet. Rows may be ragged.
type Sheet struct {
	Name     string
	Rows     [][]string
	Date1904 bool
}

// Supported reports whether path has a spreadsheet extension the reader accepts.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	default:
		return false
	}
}

// ReadFile reads the first sheet of a workbook or a CSV file.
func ReadFile(path string) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadWorkbook(f)
}

// ReadWorkbook returns the first sheet of an xlsx workbook with raw cell
// values, so dates stay serial numbers and numbers keep full precision.
func ReadWorkbook(r io.Reader) (Sheet, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	sheet := Sheet{Name: sheets[0], Rows: rows}
	if props, err := wb.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		sheet.Date1904 = *props.Date1904
	}
	return sheet, nil
}

// ReadCSV reads a comma separated export of a sheet.
func ReadCSV(r io.Reader) (Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return Sheet{Name: "csv", Rows: rows}, nil
}
