package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// readTable reads a whole CSV table into memory. It returns the header row
// and the data rows. A missing file maps to ErrLedgerMissing; unreadable
// CSV maps to ErrLedgerCorrupt.
func readTable(path, table string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &LedgerError{Op: "read", Table: table, Err: ErrLedgerMissing}
		}
		return nil, nil, &LedgerError{Op: "read", Table: table, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows surface as RowErrors during parse

	header, err = r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, &LedgerError{Op: "read", Table: table, Err: ErrLedgerCorrupt}
		}
		return nil, nil, &LedgerError{Op: "read", Table: table, Err: ErrLedgerCorrupt}
	}

	rows, err = r.ReadAll()
	if err != nil {
		return nil, nil, &LedgerError{Op: "read", Table: table, Err: ErrLedgerCorrupt}
	}
	return header, rows, nil
}

// writeTable replaces the whole CSV table atomically: the new content is
// written to a temp file in the same directory and renamed over the target.
func writeTable(path, table string, header []string, rows [][]string) error {
	w, err := newAtomicWriter(path)
	if err != nil {
		return &LedgerError{Op: "write", Table: table, Err: err}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		w.abort()
		return &LedgerError{Op: "write", Table: table, Err: err}
	}
	if err := cw.WriteAll(rows); err != nil {
		w.abort()
		return &LedgerError{Op: "write", Table: table, Err: err}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.abort()
		return &LedgerError{Op: "write", Table: table, Err: err}
	}

	if err := w.commit(); err != nil {
		return &LedgerError{Op: "write", Table: table, Err: err}
	}
	return nil
}

// columnIndex locates named columns in a header row. Tables may carry extra
// columns; only the requested ones must be present.
func columnIndex(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}

	for _, name := range names {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrLedgerCorrupt, name)
		}
	}
	return idx, nil
}

// field returns the value of a named column in a row, or an error when the
// row is too short to hold it.
func field(row []string, idx map[string]int, name string) (string, error) {
	i := idx[name]
	if i >= len(row) {
		return "", fmt.Errorf("missing field %q", name)
	}
	return row[i], nil
}
