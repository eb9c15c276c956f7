package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadOptions controls how the input file is read.
type ReadOptions struct {
	// Delimiter for delimited text. If 0, tab for .tsv and comma otherwise.
	Delimiter rune
	// Sheet selects the worksheet of an .xlsx workbook. Empty means the first sheet.
	Sheet string
}

// ReadFile reads a CSV, TSV, or XLSX file into a RawTable.
func ReadFile(path string, opt ReadOptions) (*RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path, opt.Sheet)
	case ".tsv":
		if opt.Delimiter == 0 {
			opt.Delimiter = '\t'
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	t, err := ReadDelimited(f, opt.Delimiter)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadDelimited reads delimited text from r. A zero delimiter means comma.
func ReadDelimited(r io.Reader, delim rune) (*RawTable, error) {
	if delim == 0 {
		delim = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	// A stray quote inside a cell is kept as text so a damaged value is
	// treated as unparseable rather than failing the whole file.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &RawTable{Header: header}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func readXLSX(path, sheet string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read header: sheet %q is empty", sheet)
	}

	t := &RawTable{Name: filepath.Base(path), Header: rows[0]}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
