package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
)

func absence(code, name, day string) models.AbsenceRecord {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return models.AbsenceRecord{StudentCode: code, StudentName: name, Date: d}
}

func TestReportingService_Aggregate_Empty(t *testing.T) {
	s := NewReportingService(newTestRepository(t), testLogger())

	summary := s.Aggregate(nil)
	if summary.TotalAbsences != 0 || summary.UniqueStudents != 0 || summary.UniqueDays != 0 {
		t.Errorf("empty input must yield zero counters: %+v", summary)
	}
	if summary.PerStudent == nil || len(summary.PerStudent) != 0 {
		t.Errorf("PerStudent must be empty, not nil: %#v", summary.PerStudent)
	}
}

func TestReportingService_Aggregate(t *testing.T) {
	s := NewReportingService(newTestRepository(t), testLogger())

	records := []models.AbsenceRecord{
		absence("X1", "Xavier", "2024-03-04"),
		absence("X1", "Xavier", "2024-03-04"), // second slot, same day
		absence("X1", "Xavier", "2024-03-05"),
		absence("Y1", "Yasmine", "2024-03-11"),
	}

	summary := s.Aggregate(records)
	if summary.TotalAbsences != 4 {
		t.Errorf("TotalAbsences = %d, want 4", summary.TotalAbsences)
	}
	if summary.UniqueStudents != 2 {
		t.Errorf("UniqueStudents = %d, want 2", summary.UniqueStudents)
	}
	if summary.UniqueDays != 3 {
		t.Errorf("UniqueDays = %d, want 3", summary.UniqueDays)
	}

	if len(summary.PerStudent) != 2 {
		t.Fatalf("expected 2 per-student rows, got %d", len(summary.PerStudent))
	}
	if summary.PerStudent[0].StudentCode != "X1" || summary.PerStudent[0].Count != 3 {
		t.Errorf("row 0 = %+v, want X1 with count 3", summary.PerStudent[0])
	}
	if summary.PerStudent[1].StudentCode != "Y1" || summary.PerStudent[1].Count != 1 {
		t.Errorf("row 1 = %+v, want Y1 with count 1", summary.PerStudent[1])
	}
}

func TestReportingService_Aggregate_TieBreaks(t *testing.T) {
	s := NewReportingService(newTestRepository(t), testLogger())

	records := []models.AbsenceRecord{
		absence("B1", "Zora", "2024-03-04"),
		absence("A1", "Zora", "2024-03-04"), // same name, smaller code
		absence("C1", "Ali", "2024-03-04"),
	}

	per := s.Aggregate(records).PerStudent
	want := []string{"C1", "A1", "B1"} // name asc, then code asc
	for i, code := range want {
		if per[i].StudentCode != code {
			t.Errorf("per[%d].StudentCode = %q, want %q (got order %+v)", i, per[i].StudentCode, code, per)
		}
	}
}

func TestReportingService_MonthlyStatistics(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Class name contains a path-hostile character; storage works off the
	// registry key, reporting off the display name.
	class, err := repo.Classes().Register(ctx, "5/B", []models.RosterEntry{{Code: "M100", Name: "Amine"}})
	if err != nil {
		t.Fatal(err)
	}

	march := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	one := []models.RosterEntry{{Code: "M100", Name: "Amine"}}
	if _, err := repo.Absences().RecordAbsences(ctx, class.Key, class.Name, march, "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Absences().RecordAbsences(ctx, class.Key, class.Name, april, "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}

	s := NewReportingService(repo, testLogger())
	resp, err := s.MonthlyStatistics(ctx, "5/B", time.March)
	if err != nil {
		t.Fatalf("MonthlyStatistics: %v", err)
	}
	if resp.ClassName != "5/B" || resp.Month != time.March {
		t.Errorf("unexpected response header: %+v", resp)
	}
	if resp.Summary.TotalAbsences != 1 {
		t.Errorf("TotalAbsences = %d, want 1 (april batch must be filtered out)", resp.Summary.TotalAbsences)
	}
}

func TestReportingService_MonthlyStatistics_UnknownClass(t *testing.T) {
	s := NewReportingService(newTestRepository(t), testLogger())

	_, err := s.MonthlyStatistics(context.Background(), "ghost", time.March)
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("expected ErrClassNotFound, got %v", err)
	}
}

func TestReportingService_MonthlyStatistics_InvalidMonth(t *testing.T) {
	s := NewReportingService(newTestRepository(t), testLogger())

	for _, month := range []time.Month{0, 13} {
		if _, err := s.MonthlyStatistics(context.Background(), "5B", month); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("month %d: expected ErrInvalidMonth, got %v", month, err)
		}
	}
}
