package ledger

import (
	"log"
	"strconv"
)

// CategoryEntry is one row of the category table. The table is maintained
// outside the pipeline and consumed read-only.
type CategoryEntry struct {
	Channel string
	Check   int
}

// CategoryTable is the read-only category table backed by a CSV file.
// The file may carry extra columns; only channel and check are read.
type CategoryTable struct {
	path string
}

// NewCategoryTable opens a category table at the given path.
func NewCategoryTable(path string) *CategoryTable {
	return &CategoryTable{path: path}
}

// Path returns the backing file path.
func (t *CategoryTable) Path() string { return t.path }

// Load reads the whole table. Malformed rows are skipped and reported;
// a missing file returns ErrLedgerMissing.
func (t *CategoryTable) Load() ([]CategoryEntry, error) {
	header, rows, err := readTable(t.path, "categories")
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(header, "channel", "check")
	if err != nil {
		return nil, &LedgerError{Op: "read", Table: "categories", Err: err}
	}

	entries := make([]CategoryEntry, 0, len(rows))
	for i, row := range rows {
		channel, err := field(row, idx, "channel")
		if err != nil {
			log.Printf("ledger: skipping row: %v", &RowError{Table: "categories", Line: i + 2, Err: err})
			continue
		}
		rawCheck, err := field(row, idx, "check")
		if err != nil {
			log.Printf("ledger: skipping row: %v", &RowError{Table: "categories", Line: i + 2, Err: err})
			continue
		}
		check, err := strconv.Atoi(rawCheck)
		if err != nil {
			log.Printf("ledger: skipping row: %v", &RowError{Table: "categories", Line: i + 2, Err: err})
			continue
		}

		entries = append(entries, CategoryEntry{Channel: channel, Check: check})
	}
	return entries, nil
}

// CheckedChannels returns the distinct channels whose check flag is 1.
func (t *CategoryTable) CheckedChannels() (map[string]bool, error) {
	entries, err := t.Load()
	if err != nil {
		return nil, err
	}

	checked := make(map[string]bool)
	for _, entry := range entries {
		if entry.Check == 1 {
			checked[entry.Channel] = true
		}
	}
	return checked, nil
}
