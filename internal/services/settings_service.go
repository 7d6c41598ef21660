package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SGP-2025/attendance-service/internal/models"
	"github.com/SGP-2025/attendance-service/internal/repositories"
	"github.com/SGP-2025/attendance-service/internal/validator"
)

type settingsService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSettingsService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) SettingsService {
	return &settingsService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	settings, err := s.repo.Settings().Load(ctx)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, req *UpdateSettingsRequest) (models.Settings, error) {
	if err := s.validator.Validate(req); err != nil {
		return models.Settings{}, fmt.Errorf("validation failed: %w", err)
	}

	settings := models.Settings{
		EmailNotifications: req.EmailNotifications,
		DataRetentionDays:  req.DataRetentionDays,
	}
	if req.EmailNotifications {
		settings.Email = req.Email
	}

	if err := s.repo.Settings().Save(ctx, settings); err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info("settings updated",
		"email_notifications", settings.EmailNotifications,
		"data_retention_days", settings.DataRetentionDays)
	return settings, nil
}
