package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
)

// userRecord is the on-disk shape of one credential store entry. The map key
// is the username; password holds a bcrypt string.
type userRecord struct {
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
	Name     string          `json:"name"`
}

// CredentialStore keeps every user record in one JSON document
// (username -> {password, role, name}), UTF-8 and human-diffable. Writes
// replace the whole document atomically under a mutex.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

var _ repositories.CredentialRepository = (*CredentialStore)(nil)

func (s *CredentialStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat credential store: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(models.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	seed := map[string]userRecord{
		models.DefaultAdminUsername: {
			Password: string(hash),
			Role:     models.RoleAdmin,
			Name:     models.DefaultAdminName,
		},
	}
	return s.write(seed)
}

func (s *CredentialStore) Load(ctx context.Context) (map[string]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *CredentialStore) Save(ctx context.Context, users map[string]models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make(map[string]userRecord, len(users))
	for username, u := range users {
		records[username] = userRecord{
			Password: u.PasswordHash,
			Role:     u.Role,
			Name:     u.DisplayName,
		}
	}
	return s.write(records)
}

func (s *CredentialStore) read() (map[string]models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("credential store %s: %w", s.path, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("read credential store: %w", err)
	}

	var records map[string]userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse credential store %s: %w: %v", s.path, repositories.ErrCorrupt, err)
	}

	users := make(map[string]models.User, len(records))
	for username, r := range records {
		users[username] = models.User{
			Username:     username,
			PasswordHash: r.Password,
			Role:         r.Role,
			DisplayName:  r.Name,
		}
	}
	return users, nil
}

func (s *CredentialStore) write(records map[string]userRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode credential store: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
