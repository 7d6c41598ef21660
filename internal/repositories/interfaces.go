package repositories

import (
	"context"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
)

// CredentialRepository persists user records as one keyed document. It is the
// sole source of truth for identity. The admin-never-removed invariant is
// enforced by the auth service, not here.
type CredentialRepository interface {
	// Initialize seeds the store with the default admin account when no
	// store exists yet. It is a no-op on an existing store.
	Initialize(ctx context.Context) error

	// Load returns every record keyed by username. A missing store yields
	// ErrNotFound, an unreadable document ErrCorrupt; callers decide their
	// own degradation policy.
	Load(ctx context.Context) (map[string]models.User, error)

	// Save replaces the whole store atomically.
	Save(ctx context.Context, users map[string]models.User) error
}

// ClassRepository is the registry mapping class display names to stable
// filesystem keys, with each class's derived roster.
type ClassRepository interface {
	Register(ctx context.Context, name string, roster []models.RosterEntry) (*models.Class, error)
	Get(ctx context.Context, name string) (*models.Class, error)
	List(ctx context.Context) ([]models.Class, error)
}

// AbsenceRepository appends one dated, time-slotted absence batch per roll
// call and scans them back per month. Records are never mutated; repeated
// writes for the same (class, date, slot) replace the previous batch.
type AbsenceRepository interface {
	// RecordAbsences writes one batch. An empty batch is a no-op and
	// returns an empty path.
	RecordAbsences(ctx context.Context, classKey, className string, date time.Time, timeSlot string, absentees []models.RosterEntry) (string, error)

	// ListForMonth returns every absence row of the class whose date falls
	// in the given month (any year). Files that cannot be read are skipped
	// and reported as warnings; a missing class directory is an empty
	// result, not an error.
	ListForMonth(ctx context.Context, classKey string, month time.Month) ([]models.AbsenceRecord, []string, error)

	// Sweep removes absence batches dated before the cutoff, across all
	// classes. Returns the number of removed batches plus warnings for
	// entries it could not assess or delete.
	Sweep(ctx context.Context, cutoff time.Time) (int, []string, error)
}

// SettingsRepository persists the settings document wholesale.
type SettingsRepository interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}

// Repository aggregates every store behind one dependency.
type Repository interface {
	Credentials() CredentialRepository
	Classes() ClassRepository
	Absences() AbsenceRepository
	Settings() SettingsRepository

	// Ping verifies the backing data directory is usable.
	Ping(ctx context.Context) error

	Close() error
}

// RepositoryManager owns repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	Shutdown(ctx context.Context) error
}
