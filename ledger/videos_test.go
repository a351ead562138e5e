package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestVideoTable_LoadMissing(t *testing.T) {
	table := NewVideoTable(filepath.Join(t.TempDir(), "videos.csv"))

	_, err := table.Load()
	if !errors.Is(err, ErrLedgerMissing) {
		t.Errorf("Load() error = %v, want ErrLedgerMissing", err)
	}
	if !IsMissing(err) {
		t.Error("IsMissing() = false, want true")
	}
}

func TestVideoTable_SaveLoadRoundTrip(t *testing.T) {
	table := NewVideoTable(filepath.Join(t.TempDir(), "videos.csv"))

	records := []VideoRecord{
		{ID: 1, Title: "First, with comma", Channel: "chA", Date: day(2), URL: "https://www.youtube.com/watch?v=a", Playlist: "Mix 1"},
		{ID: 2, Title: "Second", Channel: "chB", Date: day(1), URL: "https://www.youtube.com/watch?v=b", Playlist: "Mix 1"},
	}
	if err := table.Save(records); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := table.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(loaded))
	}
	if loaded[0].Title != "First, with comma" {
		t.Errorf("Title = %q, quoting not preserved", loaded[0].Title)
	}
	if !loaded[0].Date.Equal(day(2)) {
		t.Errorf("Date = %v, want %v", loaded[0].Date, day(2))
	}
}

func TestVideoTable_LoadSkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.csv")
	content := "id,title,channel,date,url,playlist\n" +
		"1,Good,chA,2024-01-02T00:00:00Z,https://www.youtube.com/watch?v=a,Mix\n" +
		"x,BadID,chA,2024-01-02T00:00:00Z,https://www.youtube.com/watch?v=b,Mix\n" +
		"3,BadDate,chA,not-a-date,https://www.youtube.com/watch?v=c,Mix\n" +
		"4,EmptyURL,chA,2024-01-02T00:00:00Z,,Mix\n" +
		"5,AlsoGood,chB,2024-01-03T00:00:00Z,https://www.youtube.com/watch?v=d,Mix\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := NewVideoTable(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d records, want 2 (bad rows skipped)", len(loaded))
	}
	if loaded[0].Title != "Good" || loaded[1].Title != "AlsoGood" {
		t.Errorf("unexpected surviving rows: %+v", loaded)
	}
}

func TestVideoTable_LoadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.csv")
	if err := os.WriteFile(path, []byte("id,title,channel\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewVideoTable(path).Load()
	if !errors.Is(err, ErrLedgerCorrupt) {
		t.Errorf("Load() error = %v, want ErrLedgerCorrupt", err)
	}
}

func TestVideoTable_AppendToEmpty(t *testing.T) {
	table := NewVideoTable(filepath.Join(t.TempDir(), "videos.csv"))

	n, err := table.Append([]VideoRecord{
		{Title: "One", Channel: "chA", Date: day(1), URL: "u1", Playlist: "P"},
		{Title: "Two", Channel: "chA", Date: day(2), URL: "u2", Playlist: "P"},
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Append() = %d, want 2", n)
	}

	loaded, err := table.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded[0].ID != 1 || loaded[1].ID != 2 {
		t.Errorf("ids = %d,%d, want 1,2", loaded[0].ID, loaded[1].ID)
	}
}

func TestVideoTable_AppendContinuesIDs(t *testing.T) {
	table := NewVideoTable(filepath.Join(t.TempDir(), "videos.csv"))

	if err := table.Save([]VideoRecord{
		{ID: 7, Title: "Existing", Channel: "chA", Date: day(1), URL: "u1", Playlist: "P"},
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := table.Append([]VideoRecord{
		{Title: "New", Channel: "chB", Date: day(2), URL: "u2", Playlist: "Q"},
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	loaded, err := table.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("rows = %d, want 2", len(loaded))
	}
	if loaded[1].ID != 8 {
		t.Errorf("appended id = %d, want 8", loaded[1].ID)
	}
}

func TestDedupeSort(t *testing.T) {
	records := []VideoRecord{
		{ID: 1, Title: "Old", Date: day(1), URL: "u1"},
		{ID: 2, Title: "Dup first", Date: day(2), URL: "dup"},
		{ID: 3, Title: "Newest", Date: day(5), URL: "u3"},
		{ID: 4, Title: "Dup second", Date: day(4), URL: "dup"},
	}

	out := DedupeSort(records)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	// First occurrence of the duplicate URL survives.
	for _, rec := range out {
		if rec.URL == "dup" && rec.Title != "Dup first" {
			t.Errorf("duplicate survivor = %q, want first occurrence", rec.Title)
		}
	}
	// Sorted by date descending.
	for i := 1; i < len(out); i++ {
		if out[i].Date.After(out[i-1].Date) {
			t.Errorf("rows not sorted descending at %d: %v > %v", i, out[i].Date, out[i-1].Date)
		}
	}
	// Ids renumbered 1..N.
	for i, rec := range out {
		if rec.ID != i+1 {
			t.Errorf("id[%d] = %d, want %d", i, rec.ID, i+1)
		}
	}
}

func TestDedupeSort_Idempotent(t *testing.T) {
	records := []VideoRecord{
		{ID: 9, Title: "A", Date: day(3), URL: "a"},
		{ID: 5, Title: "B", Date: day(1), URL: "b"},
		{ID: 2, Title: "C", Date: day(2), URL: "a"},
	}

	once := DedupeSort(records)
	twice := DedupeSort(once)

	if len(once) != len(twice) {
		t.Fatalf("len(once) = %d, len(twice) = %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("row %d differs: %+v != %+v", i, once[i], twice[i])
		}
	}
}

func TestDedupeSort_PreservesURLSet(t *testing.T) {
	records := []VideoRecord{
		{Date: day(1), URL: "a"},
		{Date: day(2), URL: "b"},
		{Date: day(3), URL: "a"},
		{Date: day(4), URL: "c"},
	}

	before := make(map[string]bool)
	for _, rec := range records {
		before[rec.URL] = true
	}

	out := DedupeSort(records)
	after := make(map[string]bool)
	for _, rec := range out {
		after[rec.URL] = true
	}

	if len(after) != len(before) {
		t.Fatalf("url set size changed: %d -> %d", len(before), len(after))
	}
	for url := range before {
		if !after[url] {
			t.Errorf("url %q lost by tidy pass", url)
		}
	}
}

func TestDedupeSort_StableTieBreak(t *testing.T) {
	same := day(3)
	records := []VideoRecord{
		{Title: "first", Date: same, URL: "a"},
		{Title: "second", Date: same, URL: "b"},
	}

	out := DedupeSort(records)
	if out[0].Title != "first" || out[1].Title != "second" {
		t.Errorf("equal dates reordered: %q, %q", out[0].Title, out[1].Title)
	}
}

func TestVideoTable_NormalizeDuplicateScenario(t *testing.T) {
	table := NewVideoTable(filepath.Join(t.TempDir(), "videos.csv"))

	if err := table.Save([]VideoRecord{
		{ID: 1, Title: "V1", Channel: "chA", Date: day(1), URL: "same-url", Playlist: "P"},
		{ID: 2, Title: "V2", Channel: "chA", Date: day(3), URL: "other", Playlist: "P"},
		{ID: 3, Title: "V1 again", Channel: "chA", Date: day(2), URL: "same-url", Playlist: "P"},
	}); err != nil {
		t.Fatal(err)
	}

	before, after, err := table.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if before != 3 || after != 2 {
		t.Errorf("Normalize() = (%d, %d), want (3, 2)", before, after)
	}

	loaded, err := table.Load()
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, rec := range loaded {
		if rec.URL == "same-url" {
			count++
			if rec.Title != "V1" {
				t.Errorf("survivor = %q, want first occurrence %q", rec.Title, "V1")
			}
		}
	}
	if count != 1 {
		t.Errorf("duplicate url rows = %d, want 1", count)
	}
}

func TestVideoTable_NormalizeMissing(t *testing.T) {
	table := NewVideoTable(filepath.Join(t.TempDir(), "videos.csv"))

	_, _, err := table.Normalize()
	if !IsMissing(err) {
		t.Errorf("Normalize() error = %v, want ErrLedgerMissing", err)
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name    string
		records []VideoRecord
		want    int
	}{
		{"empty", nil, 1},
		{"sequential", []VideoRecord{{ID: 1}, {ID: 2}}, 3},
		{"gapped", []VideoRecord{{ID: 3}, {ID: 10}}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.records); got != tt.want {
				t.Errorf("NextID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFilterByChannel(t *testing.T) {
	records := []VideoRecord{
		{ID: 1, Channel: "chA", URL: "a1"},
		{ID: 2, Channel: "chB", URL: "b1"},
		{ID: 3, Channel: "chA", URL: "a2"},
	}
	checked := map[string]bool{"chA": true}

	out := FilterByChannel(records, checked)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].URL != "a1" || out[1].URL != "a2" {
		t.Errorf("order not preserved: %+v", out)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-03-01T12:00:00Z", false},
		{"2024/03/01 12:00", false},
		{"2024-03-01 12:00:00", false},
		{"March 1st", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := ParseDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	table := NewVideoTable(filepath.Join(dir, "videos.csv"))

	if err := table.Save([]VideoRecord{{ID: 1, Title: "V", Channel: "c", Date: day(1), URL: "u", Playlist: "p"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "videos.csv" {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}
