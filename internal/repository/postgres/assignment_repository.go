package postgres

import (
	"context"
	"errors"
	"time"

	"stableCraft/domain"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		DB: db,
	}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.GroomAssignment) error {
	if err := r.DB.WithContext(ctx).Create(&assignment).Error; err != nil {
		return err
	}

	return nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uint) (domain.GroomAssignment, error) {
	var assignment domain.GroomAssignment

	err := r.DB.WithContext(ctx).First(&assignment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GroomAssignment{}, errors.New("assignment not found")
		}
		return domain.GroomAssignment{}, err
	}

	return assignment, nil
}

func (r *AssignmentRepository) FindByHorseID(ctx context.Context, horseID uint) ([]domain.GroomAssignment, error) {
	var assignments []domain.GroomAssignment

	err := r.DB.WithContext(ctx).
		Where("horse_id = ?", horseID).
		Order("started_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

// FindActiveByHorseID returns the horse's open assignment, nil when it has
// none.
func (r *AssignmentRepository) FindActiveByHorseID(ctx context.Context, horseID uint) (*domain.GroomAssignment, error) {
	var assignment domain.GroomAssignment

	err := r.DB.WithContext(ctx).
		Where("horse_id = ? AND ended_at IS NULL", horseID).
		Order("started_at DESC").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// FindLatestOverlapping returns the most recent assignment whose interval
// touches [from, to], nil when none does. Open-ended assignments overlap
// anything at or after their start.
func (r *AssignmentRepository) FindLatestOverlapping(ctx context.Context, horseID uint, from, to time.Time) (*domain.GroomAssignment, error) {
	var assignment domain.GroomAssignment

	err := r.DB.WithContext(ctx).
		Where("horse_id = ? AND started_at <= ? AND (ended_at IS NULL OR ended_at >= ?)", horseID, to, from).
		Order("started_at DESC").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *AssignmentRepository) End(ctx context.Context, id uint, endedAt time.Time) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.GroomAssignment{}).
		Where("id = ? AND ended_at IS NULL", id).
		Update("ended_at", endedAt)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("assignment not found or already ended")
	}

	return nil
}

func (r *AssignmentRepository) UpdateBondScore(ctx context.Context, id uint, bondScore int) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.GroomAssignment{}).
		Where("id = ?", id).
		Update("bond_score", bondScore)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("assignment not found")
	}

	return nil
}
