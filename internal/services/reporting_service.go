package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
)

type reportingService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportingService(repo repositories.Repository, logger *slog.Logger) ReportingService {
	return &reportingService{
		repo:   repo,
		logger: logger,
	}
}

// Aggregate computes absence statistics over a set of records. It is pure:
// no I/O, deterministic output, a zero-value summary for empty input.
func (s *reportingService) Aggregate(records []models.AbsenceRecord) AttendanceSummary {
	summary := AttendanceSummary{
		TotalAbsences: len(records),
		PerStudent:    []StudentAbsenceCount{},
	}
	if len(records) == 0 {
		return summary
	}

	type studentKey struct {
		code string
		name string
	}
	counts := make(map[studentKey]int)
	students := make(map[string]struct{})
	days := make(map[string]struct{})

	for _, r := range records {
		counts[studentKey{code: r.StudentCode, name: r.StudentName}]++
		students[r.StudentCode] = struct{}{}
		days[r.Date.Format("2006-01-02")] = struct{}{}
	}

	summary.UniqueStudents = len(students)
	summary.UniqueDays = len(days)

	for k, n := range counts {
		summary.PerStudent = append(summary.PerStudent, StudentAbsenceCount{
			StudentCode: k.code,
			StudentName: k.name,
			Count:       n,
		})
	}

	// Descending by count; name then code break ties so the order is
	// stable across runs.
	sort.Slice(summary.PerStudent, func(i, j int) bool {
		a, b := summary.PerStudent[i], summary.PerStudent[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.StudentName != b.StudentName {
			return a.StudentName < b.StudentName
		}
		return a.StudentCode < b.StudentCode
	})

	return summary
}

func (s *reportingService) MonthlyStatistics(ctx context.Context, className string, month time.Month) (*MonthlyStatisticsResponse, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	class, err := s.repo.Classes().Get(ctx, className)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("resolve class: %w", err)
	}

	records, warnings, err := s.repo.Absences().ListForMonth(ctx, class.Key, month)
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	for _, w := range warnings {
		s.logger.Warn("skipped absence file", "class", class.Name, "warning", w)
	}

	return &MonthlyStatisticsResponse{
		ClassName: class.Name,
		Month:     month,
		Summary:   s.Aggregate(records),
		Warnings:  warnings,
	}, nil
}
