package postgres

import (
	"context"
	"errors"
	"fmt"

	"stableCraft/domain"

	"gorm.io/gorm"
)

type MilestoneRepository struct {
	DB *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{DB: db}
}

func (r *MilestoneRepository) Create(ctx context.Context, m *domain.TraitMilestone) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to save trait milestone: %w", err)
	}

	return nil
}

// FindByHorseAndType returns the evaluation for one milestone window, nil
// when the horse has not been evaluated for it yet.
func (r *MilestoneRepository) FindByHorseAndType(ctx context.Context, horseID uint, milestoneType domain.MilestoneType) (*domain.TraitMilestone, error) {
	var m domain.TraitMilestone

	err := r.DB.WithContext(ctx).
		Where("horse_id = ? AND milestone_type = ?", horseID, milestoneType).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trait_milestones: %w", err)
	}

	return &m, nil
}

func (r *MilestoneRepository) FindByHorseID(ctx context.Context, horseID uint) ([]domain.TraitMilestone, error) {
	var milestones []domain.TraitMilestone

	err := r.DB.WithContext(ctx).
		Where("horse_id = ?", horseID).
		Order("window_start ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trait_milestones: %w", err)
	}

	return milestones, nil
}
