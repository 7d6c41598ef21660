package services

import (
	"context"
	"testing"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
)

func newRetentionFixture(t *testing.T, now time.Time) (RetentionService, repositories.Repository) {
	t.Helper()

	repo := newTestRepository(t)
	settings := NewSettingsService(repo, testLogger(), newTestValidator())
	service := NewRetentionService(repo, settings, testLogger()).(*retentionService)
	service.now = func() time.Time { return now }
	return service, repo
}

func TestRetentionService_Sweep(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	service, repo := newRetentionFixture(t, now)
	ctx := context.Background()

	if err := repo.Settings().Save(ctx, models.Settings{DataRetentionDays: 60}); err != nil {
		t.Fatal(err)
	}

	class, err := repo.Classes().Register(ctx, "5B", nil)
	if err != nil {
		t.Fatal(err)
	}
	one := []models.RosterEntry{{Code: "M100", Name: "Amine"}}
	stale := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	if _, err := repo.Absences().RecordAbsences(ctx, class.Key, class.Name, stale, "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Absences().RecordAbsences(ctx, class.Key, class.Name, fresh, "8h30-9h30", one); err != nil {
		t.Fatal(err)
	}

	resp, err := service.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if resp.RetentionDays != 60 {
		t.Errorf("RetentionDays = %d, want 60", resp.RetentionDays)
	}
	if resp.Removed != 1 {
		t.Errorf("Removed = %d, want 1", resp.Removed)
	}

	records, _, err := repo.Absences().ListForMonth(ctx, class.Key, time.May)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("fresh batch must survive, got %d records", len(records))
	}
	records, _, err = repo.Absences().ListForMonth(ctx, class.Key, time.March)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("stale batch must be gone, got %d records", len(records))
	}
}

func TestRetentionService_Sweep_ClampsLowRetention(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	service, repo := newRetentionFixture(t, now)
	ctx := context.Background()

	// An out-of-band edit can put an unvalidated document on disk. The
	// sweep must still never delete anything younger than 30 days.
	if err := repo.Settings().Save(ctx, models.Settings{DataRetentionDays: 1}); err != nil {
		t.Fatal(err)
	}

	class, err := repo.Classes().Register(ctx, "5B", nil)
	if err != nil {
		t.Fatal(err)
	}
	recent := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	if _, err := repo.Absences().RecordAbsences(ctx, class.Key, class.Name, recent, "8h30-9h30",
		[]models.RosterEntry{{Code: "M100", Name: "Amine"}}); err != nil {
		t.Fatal(err)
	}

	resp, err := service.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if resp.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want clamp to 30", resp.RetentionDays)
	}
	if resp.Removed != 0 {
		t.Errorf("Removed = %d, want 0", resp.Removed)
	}
}

func TestRetentionService_Sweep_EmptyStore(t *testing.T) {
	service, _ := newRetentionFixture(t, time.Now())

	resp, err := service.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if resp.Removed != 0 || len(resp.Warnings) != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}
