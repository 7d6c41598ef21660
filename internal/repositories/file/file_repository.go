package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SGP-2025/attendance-service/internal/repositories"
)

// Store file names inside the data directory.
const (
	usersFileName    = "users.json"
	settingsFileName = "settings.json"
	classesFileName  = "classes.json"
	absencesDirName  = "absences"
)

// RepositoryConfig carries everything the file-backed stores need.
type RepositoryConfig struct {
	// DataDir is the root directory holding users.json, settings.json,
	// classes.json and the absences/ tree.
	DataDir string
}

type fileRepository struct {
	credentials *CredentialStore
	classes     *ClassRegistry
	absences    *AbsenceStore
	settings    *SettingsStore
	dataDir     string
}

var _ repositories.Repository = (*fileRepository)(nil)

func (r *fileRepository) Credentials() repositories.CredentialRepository { return r.credentials }
func (r *fileRepository) Classes() repositories.ClassRepository          { return r.classes }
func (r *fileRepository) Absences() repositories.AbsenceRepository       { return r.absences }
func (r *fileRepository) Settings() repositories.SettingsRepository      { return r.settings }

func (r *fileRepository) Ping(ctx context.Context) error {
	info, err := os.Stat(r.dataDir)
	if err != nil {
		return fmt.Errorf("data directory %s: %w", r.dataDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", r.dataDir)
	}
	return nil
}

func (r *fileRepository) Close() error { return nil }

// Manager owns the lifecycle of the file-backed repository set.
type Manager struct {
	config RepositoryConfig
	repo   *fileRepository
}

var _ repositories.RepositoryManager = (*Manager)(nil)

func NewRepositoryManager(config RepositoryConfig) *Manager {
	return &Manager{config: config}
}

func (m *Manager) Initialize() error {
	dataDir := m.config.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	absenceRoot := filepath.Join(dataDir, absencesDirName)
	if err := os.MkdirAll(absenceRoot, 0o755); err != nil {
		return fmt.Errorf("create data directories: %w", err)
	}

	m.repo = &fileRepository{
		credentials: NewCredentialStore(filepath.Join(dataDir, usersFileName)),
		classes:     NewClassRegistry(filepath.Join(dataDir, classesFileName)),
		absences:    NewAbsenceStore(absenceRoot),
		settings:    NewSettingsStore(filepath.Join(dataDir, settingsFileName)),
		dataDir:     dataDir,
	}
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
