package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SGP-2025/attendance-service/internal/repositories"
)

type retentionService struct {
	repo     repositories.Repository
	settings SettingsService
	logger   *slog.Logger

	// now is swapped in tests
	now func() time.Time
}

func NewRetentionService(repo repositories.Repository, settings SettingsService, logger *slog.Logger) RetentionService {
	return &retentionService{
		repo:     repo,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Sweep removes absence batches older than data_retention_days. It only runs
// when explicitly invoked; the system never expires records on its own.
func (s *retentionService) Sweep(ctx context.Context) (*RetentionSweepResponse, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load retention settings: %w", err)
	}

	days := settings.DataRetentionDays
	if days < 30 {
		// The settings document is validated on write, but an
		// out-of-band edit must not turn the sweep into a purge.
		days = 30
	}

	cutoff := s.now().AddDate(0, 0, -days)
	removed, warnings, err := s.repo.Absences().Sweep(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("sweep absence records: %w", err)
	}

	s.logger.Info("retention sweep finished",
		"retention_days", days,
		"cutoff", cutoff.Format("2006-01-02"),
		"removed", removed,
		"warnings", len(warnings))

	return &RetentionSweepResponse{
		RetentionDays: days,
		Removed:       removed,
		Warnings:      warnings,
	}, nil
}
