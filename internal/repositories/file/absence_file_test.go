package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAbsenceStore_EmptyBatchCreatesNoFile(t *testing.T) {
	root := t.TempDir()
	store := NewAbsenceStore(root)

	path, err := store.RecordAbsences(context.Background(), "5B", "5B", date("2024-03-04"), "8h30-9h30", nil)
	if err != nil {
		t.Fatalf("RecordAbsences: %v", err)
	}
	if path != "" {
		t.Errorf("expected no file, got %q", path)
	}
	if _, err := os.Stat(filepath.Join(root, "5B")); !os.IsNotExist(err) {
		t.Error("class directory must not be created for an empty batch")
	}
}

func TestAbsenceStore_RecordAndListRoundTrip(t *testing.T) {
	store := NewAbsenceStore(t.TempDir())
	ctx := context.Background()

	absentees := []models.RosterEntry{
		{Code: "M100", Name: "Amine"},
		{Code: "M101", Name: "Bouchra"},
	}
	path, err := store.RecordAbsences(ctx, "5B", "5B", date("2024-03-04"), "8h30-9h30", absentees)
	if err != nil {
		t.Fatalf("RecordAbsences: %v", err)
	}
	if filepath.Base(path) != "absences_2024-03-04_8h30-9h30.xlsx" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	records, warnings, err := store.ListForMonth(ctx, "5B", time.March)
	if err != nil {
		t.Fatalf("ListForMonth: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	r := records[0]
	if r.StudentCode != "M100" || r.StudentName != "Amine" {
		t.Errorf("unexpected first record: %+v", r)
	}
	if !r.Date.Equal(date("2024-03-04")) {
		t.Errorf("expected date 2024-03-04, got %v", r.Date)
	}
	if r.TimeSlot != "8h30-9h30" || r.ClassName != "5B" {
		t.Errorf("slot/class not round-tripped: %+v", r)
	}
}

func TestAbsenceStore_LastWriteWins(t *testing.T) {
	store := NewAbsenceStore(t.TempDir())
	ctx := context.Background()
	d := date("2024-03-04")

	first := []models.RosterEntry{{Code: "M100", Name: "Amine"}}
	if _, err := store.RecordAbsences(ctx, "5B", "5B", d, "8h30-9h30", first); err != nil {
		t.Fatalf("first write: %v", err)
	}

	second := []models.RosterEntry{
		{Code: "M200", Name: "Karim"},
		{Code: "M201", Name: "Lina"},
	}
	if _, err := store.RecordAbsences(ctx, "5B", "5B", d, "8h30-9h30", second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	records, _, err := store.ListForMonth(ctx, "5B", time.March)
	if err != nil {
		t.Fatalf("ListForMonth: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected only the second batch (2 records), got %d", len(records))
	}
	for _, r := range records {
		if r.StudentCode == "M100" {
			t.Error("first batch still retrievable after overwrite")
		}
	}
}

func TestAbsenceStore_MonthFilter(t *testing.T) {
	store := NewAbsenceStore(t.TempDir())
	ctx := context.Background()
	one := []models.RosterEntry{{Code: "M1", Name: "A"}}

	if _, err := store.RecordAbsences(ctx, "5B", "5B", date("2024-03-04"), "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordAbsences(ctx, "5B", "5B", date("2024-04-01"), "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}
	// Same month of a different year also matches, as it always has.
	if _, err := store.RecordAbsences(ctx, "5B", "5B", date("2023-03-10"), "9h30-10h30", one); err != nil {
		t.Fatal(err)
	}

	records, _, err := store.ListForMonth(ctx, "5B", time.March)
	if err != nil {
		t.Fatalf("ListForMonth: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 march records, got %d", len(records))
	}
}

func TestAbsenceStore_ListForMonth_MissingDirectory(t *testing.T) {
	store := NewAbsenceStore(t.TempDir())

	records, warnings, err := store.ListForMonth(context.Background(), "ghost", time.March)
	if err != nil {
		t.Fatalf("expected nil error for missing directory, got %v", err)
	}
	if len(records) != 0 || len(warnings) != 0 {
		t.Errorf("expected empty result, got %d records %d warnings", len(records), len(warnings))
	}
}

func TestAbsenceStore_ListForMonth_SkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	store := NewAbsenceStore(root)
	ctx := context.Background()

	if _, err := store.RecordAbsences(ctx, "5B", "5B", date("2024-03-04"), "8h30-9h30", []models.RosterEntry{{Code: "M1", Name: "A"}}); err != nil {
		t.Fatal(err)
	}
	// Not a workbook at all.
	bad := filepath.Join(root, "5B", "absences_2024-03-05_9h30-10h30.xlsx")
	if err := os.WriteFile(bad, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, warnings, err := store.ListForMonth(ctx, "5B", time.March)
	if err != nil {
		t.Fatalf("ListForMonth must not hard-fail on one bad file: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected the readable record, got %d", len(records))
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning for the bad file, got %v", warnings)
	}
}

func TestAbsenceStore_WriteLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store := NewAbsenceStore(root)

	path, err := store.RecordAbsences(context.Background(), "5B", "5B", date("2024-03-04"), "8h30-9h30",
		[]models.RosterEntry{{Code: "M100", Name: "Amine"}})
	if err != nil {
		t.Fatalf("RecordAbsences: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "5B"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(path) {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected only the batch file, found %v", names)
	}
}

func TestAbsenceStore_IgnoresForeignFiles(t *testing.T) {
	root := t.TempDir()
	store := NewAbsenceStore(root)
	ctx := context.Background()

	if _, err := store.RecordAbsences(ctx, "5B", "5B", date("2024-03-04"), "8h30-9h30",
		[]models.RosterEntry{{Code: "M100", Name: "Amine"}}); err != nil {
		t.Fatal(err)
	}

	// A crash-orphaned temp file and an unrelated workbook must be
	// invisible to both reads and the sweep.
	dir := filepath.Join(root, "5B")
	for _, name := range []string{".absences-orphan.xlsx", "notes.xlsx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("garbage"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	records, warnings, err := store.ListForMonth(ctx, "5B", time.March)
	if err != nil {
		t.Fatalf("ListForMonth: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
	if len(warnings) != 0 {
		t.Errorf("foreign files must not produce warnings: %v", warnings)
	}

	removed, warnings, err := store.Sweep(ctx, date("2030-01-01"))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Errorf("Sweep removed %d batches, want 1", removed)
	}
	if len(warnings) != 0 {
		t.Errorf("Sweep must not warn about foreign files: %v", warnings)
	}
	for _, name := range []string{".absences-orphan.xlsx", "notes.xlsx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("foreign file %s must be left alone: %v", name, err)
		}
	}
}

func TestAbsenceStore_Sweep(t *testing.T) {
	store := NewAbsenceStore(t.TempDir())
	ctx := context.Background()
	one := []models.RosterEntry{{Code: "M1", Name: "A"}}

	if _, err := store.RecordAbsences(ctx, "5B", "5B", date("2023-01-10"), "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordAbsences(ctx, "5B", "5B", date("2024-03-04"), "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordAbsences(ctx, "6C", "6C", date("2023-02-01"), "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}

	removed, warnings, err := store.Sweep(ctx, date("2024-01-01"))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed batches, got %d", removed)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	records, _, err := store.ListForMonth(ctx, "5B", time.March)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("recent batch must survive the sweep, got %d records", len(records))
	}
}

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{name: "valid", in: "absences_2024-03-04_8h30-9h30.xlsx", ok: true},
		{name: "no prefix", in: "2024-03-04.xlsx", ok: false},
		{name: "bad date", in: "absences_notadate__.xlsx", ok: false},
		{name: "truncated", in: "absences_2024", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := dateFromFilename(tt.in)
			if ok != tt.ok {
				t.Errorf("dateFromFilename(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
		})
	}
}
