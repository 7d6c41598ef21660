package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
)

// ClassRegistry assigns each registered class a stable filesystem key and
// keeps its derived roster. Keys start as the sanitized display name; when a
// different class already holds that key a numeric suffix is appended, so two
// names that sanitize identically never share an absence directory.
type ClassRegistry struct {
	path string
	mu   sync.Mutex
}

func NewClassRegistry(path string) *ClassRegistry {
	return &ClassRegistry{path: path}
}

var _ repositories.ClassRepository = (*ClassRegistry)(nil)

func (r *ClassRegistry) Register(ctx context.Context, name string, roster []models.RosterEntry) (*models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	classes, err := r.read()
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, err
	}

	if _, ok := classes[name]; ok {
		return nil, fmt.Errorf("class %q: %w", name, repositories.ErrAlreadyExists)
	}

	class := models.Class{
		Name:   name,
		Key:    r.assignKey(classes, name),
		Roster: roster,
	}
	if classes == nil {
		classes = make(map[string]models.Class)
	}
	classes[name] = class

	if err := r.write(classes); err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRegistry) Get(ctx context.Context, name string) (*models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	classes, err := r.read()
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("class %q: %w", name, repositories.ErrNotFound)
		}
		return nil, err
	}

	class, ok := classes[name]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", name, repositories.ErrNotFound)
	}
	return &class, nil
}

func (r *ClassRegistry) List(ctx context.Context) ([]models.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	classes, err := r.read()
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	list := make([]models.Class, 0, len(classes))
	for _, c := range classes {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// assignKey picks the first free key among sanitized, sanitized-2,
// sanitized-3, ...
func (r *ClassRegistry) assignKey(classes map[string]models.Class, name string) string {
	base := Sanitize(name)
	if base == "" {
		base = "classe"
	}

	taken := make(map[string]bool, len(classes))
	for _, c := range classes {
		taken[c.Key] = true
	}

	key := base
	for i := 2; taken[key]; i++ {
		key = fmt.Sprintf("%s-%d", base, i)
	}
	return key
}

func (r *ClassRegistry) read() (map[string]models.Class, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("class registry %s: %w", r.path, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("read class registry: %w", err)
	}

	var classes map[string]models.Class
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("parse class registry %s: %w: %v", r.path, repositories.ErrCorrupt, err)
	}
	return classes, nil
}

func (r *ClassRegistry) write(classes map[string]models.Class) error {
	data, err := json.MarshalIndent(classes, "", "    ")
	if err != nil {
		return fmt.Errorf("encode class registry: %w", err)
	}
	return writeFileAtomic(r.path, data)
}
