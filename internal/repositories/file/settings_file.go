package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
)

// SettingsStore persists the settings document as one JSON file, replaced
// wholesale on every save.
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

var _ repositories.SettingsRepository = (*SettingsStore)(nil)

func (s *SettingsStore) Load(ctx context.Context) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Settings{}, fmt.Errorf("settings store %s: %w", s.path, repositories.ErrNotFound)
		}
		return models.Settings{}, fmt.Errorf("read settings store: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("parse settings store %s: %w: %v", s.path, repositories.ErrCorrupt, err)
	}
	return settings, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("encode settings store: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
