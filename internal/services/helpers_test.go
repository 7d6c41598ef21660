package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/SGP-2025/attendance-service/internal/repositories"
	"github.com/SGP-2025/attendance-service/internal/repositories/file"
	"github.com/SGP-2025/attendance-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRepository builds a file-backed repository rooted in a per-test
// temp directory.
func newTestRepository(t *testing.T) repositories.Repository {
	t.Helper()

	manager := file.NewRepositoryManager(file.RepositoryConfig{DataDir: t.TempDir()})
	if err := manager.Initialize(); err != nil {
		t.Fatalf("initialize repository: %v", err)
	}
	return manager.GetRepository()
}

func newTestValidator() *validator.Validator {
	return validator.New()
}

func seedCredentials(t *testing.T, repo repositories.Repository) {
	t.Helper()
	if err := repo.Credentials().Initialize(context.Background()); err != nil {
		t.Fatalf("seed credential store: %v", err)
	}
}
