package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
	"github.com/SGP-2025/attendance-service/internal/validator"
)

type classService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ClassService {
	return &classService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *classService) Register(ctx context.Context, req *RegisterClassRequest) (*models.Class, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	class, err := s.repo.Classes().Register(ctx, req.Name, req.Roster)
	if err != nil {
		if repositories.IsAlreadyExistsError(err) {
			return nil, ErrClassExists
		}
		return nil, fmt.Errorf("register class: %w", err)
	}

	s.logger.Info("class registered", "class", class.Name, "key", class.Key, "students", len(class.Roster))
	return class, nil
}

func (s *classService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.Classes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}
