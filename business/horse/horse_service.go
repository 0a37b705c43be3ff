package horse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stableCraft/domain"
	"stableCraft/pkg/logger"
)

// HorseRepository contract interface
type HorseRepository interface {
	Create(ctx context.Context, horse *domain.Horse) error
	FindByID(ctx context.Context, id uint) (domain.Horse, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Horse, error)
	Update(ctx context.Context, horse *domain.Horse) error
	Delete(ctx context.Context, id uint) error
}

type horseService struct {
	horseRepo HorseRepository
}

func NewHorseService(horseRepo HorseRepository) *horseService {
	return &horseService{
		horseRepo: horseRepo,
	}
}

func (s *horseService) CreateHorse(ctx context.Context, horse *domain.Horse) (*domain.Horse, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating horse")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if horse.Name == "" {
		logger.Error("Invalid horse data: name is required")
		return nil, errors.New("horse name is required")
	}

	if !horse.Temperament.Valid() {
		logger.Error("Invalid horse data: unknown temperament", "temperament", string(horse.Temperament))
		return nil, errors.New("unknown temperament")
	}

	if horse.DateOfBirth.IsZero() {
		logger.Error("Invalid horse data: date of birth is required")
		return nil, errors.New("date of birth is required")
	}

	if horse.DateOfBirth.After(time.Now()) {
		logger.Error("Invalid horse data: date of birth is in the future")
		return nil, errors.New("date of birth cannot be in the future")
	}

	if horse.StressLevel < 0 {
		logger.Error("Invalid horse data: negative stress level")
		return nil, errors.New("stress level cannot be negative")
	}

	if err := s.horseRepo.Create(ctx, horse); err != nil {
		logger.Error("failed to create new horse", err)
		return nil, fmt.Errorf("failed to create horse: %w", err)
	}

	logger.Info("horse created successfully")

	return horse, nil
}

func (s *horseService) GetHorsesByUser(ctx context.Context, userID uint) ([]domain.Horse, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing horses")
		return nil, fmt.Errorf("context error: %w", err)
	}

	horses, err := s.horseRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to find horses by user", err)
		return nil, err
	}

	return horses, nil
}

// GetHorseByID is owner-scoped: a horse belonging to someone else reads as
// not found.
func (s *horseService) GetHorseByID(ctx context.Context, id, userID uint) (*domain.Horse, error) {
	if id == 0 {
		logger.Error("invalid horse id")
		return nil, errors.New("invalid horse id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when getting horse")
		return nil, fmt.Errorf("context error: %w", err)
	}

	horse, err := s.horseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find horse by id", err.Error())
		return nil, err
	}

	if horse.UserID != userID {
		logger.Error("horse does not belong to requesting user", "horse_id", id, "user_id", userID)
		return nil, errors.New("horse not found")
	}

	return &horse, nil
}

func (s *horseService) UpdateHorse(ctx context.Context, horse *domain.Horse, userID uint) (*domain.Horse, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating horse")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if horse.ID == 0 {
		logger.Error("Invalid horse data: ID is required")
		return nil, errors.New("horse ID is required")
	}

	// Validation
	if horse.Name == "" {
		logger.Error("Invalid horse data: name is required")
		return nil, errors.New("horse name is required")
	}

	if !horse.Temperament.Valid() {
		logger.Error("Invalid horse data: unknown temperament", "temperament", string(horse.Temperament))
		return nil, errors.New("unknown temperament")
	}

	if horse.StressLevel < 0 {
		logger.Error("Invalid horse data: negative stress level")
		return nil, errors.New("stress level cannot be negative")
	}

	// Verify horse exists and belongs to the caller
	existing, err := s.horseRepo.FindByID(ctx, horse.ID)
	if err != nil {
		logger.Error("horse not found", err)
		return nil, errors.New("horse not found")
	}

	if existing.UserID != userID {
		logger.Error("horse does not belong to requesting user", "horse_id", horse.ID, "user_id", userID)
		return nil, errors.New("horse not found")
	}

	// ownership and birth date never change on update
	horse.UserID = existing.UserID
	if horse.DateOfBirth.IsZero() {
		horse.DateOfBirth = existing.DateOfBirth
	}

	if err := s.horseRepo.Update(ctx, horse); err != nil {
		logger.Error("failed to update horse", err)
		return nil, fmt.Errorf("failed to update horse: %w", err)
	}

	updatedHorse, err := s.horseRepo.FindByID(ctx, horse.ID)
	if err != nil {
		logger.Error("failed to fetch updated horse", err)
		return nil, fmt.Errorf("failed to fetch updated horse: %w", err)
	}

	logger.Info("horse updated success")

	return &updatedHorse, nil
}

func (s *horseService) DeleteHorse(ctx context.Context, id, userID uint) error {
	if id == 0 {
		logger.Error("Invalid horse id when deleting horse")
		return errors.New("invalid horse id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting horse")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify horse exists and belongs to the caller
	existing, err := s.horseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("horse not found", err)
		return errors.New("horse not found")
	}

	if existing.UserID != userID {
		logger.Error("horse does not belong to requesting user", "horse_id", id, "user_id", userID)
		return errors.New("horse not found")
	}

	if err := s.horseRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete horse", err)
		return fmt.Errorf("failed to delete horse: %w", err)
	}

	logger.Info("horse deleted success")

	return nil
}
