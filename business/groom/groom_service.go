package groom

import (
	"context"
	"errors"
	"fmt"

	"stableCraft/domain"
	"stableCraft/pkg/logger"
)

const (
	minSkillLevel = 1
	maxSkillLevel = 10
)

// GroomRepository contract interface
type GroomRepository interface {
	Create(ctx context.Context, groom *domain.Groom) error
	FindByID(ctx context.Context, id uint) (domain.Groom, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Groom, error)
	Update(ctx context.Context, groom *domain.Groom) error
	Delete(ctx context.Context, id uint) error
}

type groomService struct {
	groomRepo GroomRepository
}

func NewGroomService(groomRepo GroomRepository) *groomService {
	return &groomService{
		groomRepo: groomRepo,
	}
}

func (s *groomService) CreateGroom(ctx context.Context, groom *domain.Groom) (*domain.Groom, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating groom")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if groom.Name == "" {
		logger.Error("Invalid groom data: name is required")
		return nil, errors.New("groom name is required")
	}

	if !groom.Personality.Valid() {
		logger.Error("Invalid groom data: unknown personality", "personality", string(groom.Personality))
		return nil, errors.New("unknown personality")
	}

	if groom.SkillLevel == 0 {
		groom.SkillLevel = minSkillLevel
	}

	if groom.SkillLevel < minSkillLevel || groom.SkillLevel > maxSkillLevel {
		logger.Error("Invalid groom data: skill level out of range", "skill_level", groom.SkillLevel)
		return nil, errors.New("skill level must be between 1 and 10")
	}

	if err := s.groomRepo.Create(ctx, groom); err != nil {
		logger.Error("failed to create new groom", err)
		return nil, fmt.Errorf("failed to create groom: %w", err)
	}

	logger.Info("groom created successfully")

	return groom, nil
}

func (s *groomService) GetGroomsByUser(ctx context.Context, userID uint) ([]domain.Groom, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing grooms")
		return nil, fmt.Errorf("context error: %w", err)
	}

	grooms, err := s.groomRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to find grooms by user", err)
		return nil, err
	}

	return grooms, nil
}

// GetGroomByID is owner-scoped: a groom employed by someone else reads as
// not found.
func (s *groomService) GetGroomByID(ctx context.Context, id, userID uint) (*domain.Groom, error) {
	if id == 0 {
		logger.Error("invalid groom id")
		return nil, errors.New("invalid groom id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when getting groom")
		return nil, fmt.Errorf("context error: %w", err)
	}

	groom, err := s.groomRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find groom by id", err.Error())
		return nil, err
	}

	if groom.UserID != userID {
		logger.Error("groom does not belong to requesting user", "groom_id", id, "user_id", userID)
		return nil, errors.New("groom not found")
	}

	return &groom, nil
}

func (s *groomService) UpdateGroom(ctx context.Context, groom *domain.Groom, userID uint) (*domain.Groom, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating groom")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if groom.ID == 0 {
		logger.Error("Invalid groom data: ID is required")
		return nil, errors.New("groom ID is required")
	}

	// Validation
	if groom.Name == "" {
		logger.Error("Invalid groom data: name is required")
		return nil, errors.New("groom name is required")
	}

	if !groom.Personality.Valid() {
		logger.Error("Invalid groom data: unknown personality", "personality", string(groom.Personality))
		return nil, errors.New("unknown personality")
	}

	if groom.SkillLevel < minSkillLevel || groom.SkillLevel > maxSkillLevel {
		logger.Error("Invalid groom data: skill level out of range", "skill_level", groom.SkillLevel)
		return nil, errors.New("skill level must be between 1 and 10")
	}

	// Verify groom exists and belongs to the caller
	existing, err := s.groomRepo.FindByID(ctx, groom.ID)
	if err != nil {
		logger.Error("groom not found", err)
		return nil, errors.New("groom not found")
	}

	if existing.UserID != userID {
		logger.Error("groom does not belong to requesting user", "groom_id", groom.ID, "user_id", userID)
		return nil, errors.New("groom not found")
	}

	groom.UserID = existing.UserID

	if err := s.groomRepo.Update(ctx, groom); err != nil {
		logger.Error("failed to update groom", err)
		return nil, fmt.Errorf("failed to update groom: %w", err)
	}

	updatedGroom, err := s.groomRepo.FindByID(ctx, groom.ID)
	if err != nil {
		logger.Error("failed to fetch updated groom", err)
		return nil, fmt.Errorf("failed to fetch updated groom: %w", err)
	}

	logger.Info("groom updated success")

	return &updatedGroom, nil
}

func (s *groomService) DeleteGroom(ctx context.Context, id, userID uint) error {
	if id == 0 {
		logger.Error("Invalid groom id when deleting groom")
		return errors.New("invalid groom id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting groom")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify groom exists and belongs to the caller
	existing, err := s.groomRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("groom not found", err)
		return errors.New("groom not found")
	}

	if existing.UserID != userID {
		logger.Error("groom does not belong to requesting user", "groom_id", id, "user_id", userID)
		return errors.New("groom not found")
	}

	if err := s.groomRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete groom", err)
		return fmt.Errorf("failed to delete groom: %w", err)
	}

	logger.Info("groom deleted success")

	return nil
}
