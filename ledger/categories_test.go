package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCategories(t *testing.T, content string) *CategoryTable {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return NewCategoryTable(path)
}

func TestCategoryTable_Load(t *testing.T) {
	table := writeCategories(t, "channel,check\nchA,1\nchB,0\nchC,2\n")

	entries, err := table.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Load() returned %d entries, want 3", len(entries))
	}
	if entries[0].Channel != "chA" || entries[0].Check != 1 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestCategoryTable_LoadExtraColumns(t *testing.T) {
	table := writeCategories(t, "id,channel,genre,check\n1,chA,music,1\n2,chB,talk,0\n")

	entries, err := table.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Load() returned %d entries, want 2", len(entries))
	}
	if entries[0].Channel != "chA" || entries[0].Check != 1 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestCategoryTable_LoadSkipsBadRows(t *testing.T) {
	table := writeCategories(t, "channel,check\nchA,1\nchB,yes\nchC\n")

	entries, err := table.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Channel != "chA" {
		t.Errorf("surviving entries = %+v, want only chA", entries)
	}
}

func TestCategoryTable_LoadMissing(t *testing.T) {
	table := NewCategoryTable(filepath.Join(t.TempDir(), "categories.csv"))

	_, err := table.Load()
	if !errors.Is(err, ErrLedgerMissing) {
		t.Errorf("Load() error = %v, want ErrLedgerMissing", err)
	}
}

func TestCategoryTable_CheckedChannels(t *testing.T) {
	table := writeCategories(t, "channel,check\nchA,1\nchB,0\nchC,1\nchA,1\n")

	checked, err := table.CheckedChannels()
	if err != nil {
		t.Fatalf("CheckedChannels() error = %v", err)
	}
	if len(checked) != 2 {
		t.Fatalf("checked set size = %d, want 2", len(checked))
	}
	if !checked["chA"] || !checked["chC"] {
		t.Errorf("checked = %v, want chA and chC", checked)
	}
	if checked["chB"] {
		t.Error("chB marked checked, want unchecked")
	}
}
