package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
	"github.com/SGP-2025/attendance-service/internal/validator"
)

// Result messages are part of the user-facing contract.
const (
	msgUserExists     = "Username already exists"
	msgTeacherAdded   = "Teacher added successfully"
	msgInvalidRemove  = "Invalid username or cannot remove admin"
	msgTeacherRemoved = "Teacher removed successfully"
)

// dummyHash is compared against when the username does not exist, so a
// verification of an unknown user costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credential-placeholder"), bcrypt.DefaultCost)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Verify(ctx context.Context, username, password string) (bool, *models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return false, nil, err
	}

	user, ok := users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false, nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil, nil
	}

	s.logger.Info("user verified", "username", username, "role", user.Role)
	return true, &user, nil
}

func (s *authService) AddTeacher(ctx context.Context, req *AddTeacherRequest) (*ActionResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	if _, exists := users[req.Username]; exists {
		return &ActionResult{Success: false, Message: msgUserExists}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AccessCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash access code: %w", err)
	}

	users[req.Username] = models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         models.RoleTeacher,
		DisplayName:  req.Name,
	}

	if err := s.repo.Credentials().Save(ctx, users); err != nil {
		return nil, fmt.Errorf("save credential store: %w", err)
	}

	s.logger.Info("teacher account created", "username", req.Username)
	return &ActionResult{Success: true, Message: msgTeacherAdded}, nil
}

func (s *authService) RemoveTeacher(ctx context.Context, username string) (*ActionResult, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	user, exists := users[username]
	if !exists || user.IsAdmin() {
		// The admin record is never removable; the same message covers
		// unknown usernames.
		return &ActionResult{Success: false, Message: msgInvalidRemove}, nil
	}

	delete(users, username)
	if err := s.repo.Credentials().Save(ctx, users); err != nil {
		return nil, fmt.Errorf("save credential store: %w", err)
	}

	s.logger.Info("teacher account removed", "username", username)
	return &ActionResult{Success: true, Message: msgTeacherRemoved}, nil
}

func (s *authService) ListTeachers(ctx context.Context) ([]models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	var teachers []models.User
	for _, u := range users {
		if u.Role == models.RoleTeacher {
			teachers = append(teachers, u)
		}
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].Username < teachers[j].Username })
	return teachers, nil
}

// loadUsers treats a store that does not exist yet as empty, but surfaces a
// corrupt or unreadable store as a hard error instead of locking everyone
// out behind "no users".
func (s *authService) loadUsers(ctx context.Context) (map[string]models.User, error) {
	users, err := s.repo.Credentials().Load(ctx)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return make(map[string]models.User), nil
		}
		return nil, fmt.Errorf("load credential store: %w", err)
	}
	return users, nil
}
