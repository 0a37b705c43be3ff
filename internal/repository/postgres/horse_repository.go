package postgres

import (
	"context"
	"errors"
	"time"

	"stableCraft/domain"

	"gorm.io/gorm"
)

type HorseRepository struct {
	DB *gorm.DB
}

func NewHorseRepository(db *gorm.DB) *HorseRepository {
	return &HorseRepository{
		DB: db,
	}
}

func (r *HorseRepository) Create(ctx context.Context, horse *domain.Horse) error {
	if err := r.DB.WithContext(ctx).Create(&horse).Error; err != nil {
		return err
	}

	return nil
}

func (r *HorseRepository) FindByID(ctx context.Context, id uint) (domain.Horse, error) {
	var horse domain.Horse

	err := r.DB.WithContext(ctx).First(&horse, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Horse{}, errors.New("horse not found")
		}
		return domain.Horse{}, err
	}

	return horse, nil
}

func (r *HorseRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Horse, error) {
	var horses []domain.Horse

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&horses).Error; err != nil {
		return nil, err
	}

	return horses, nil
}

func (r *HorseRepository) Update(ctx context.Context, horse *domain.Horse) error {
	var existing domain.Horse
	if err := r.DB.WithContext(ctx).First(&existing, horse.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("horse not found")
		}
		return err
	}

	horse.UpdatedAt = time.Now()

	if err := r.DB.WithContext(ctx).Model(&domain.Horse{}).Where("id = ?", horse.ID).
		Select("name", "temperament", "date_of_birth", "stress_level", "updated_at").
		Updates(horse).Error; err != nil {
		return err
	}

	return nil
}

func (r *HorseRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Horse{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("horse not found or already deleted")
	}

	return nil
}

func (r *HorseRepository) UpdateStressLevel(ctx context.Context, id uint, stressLevel float64) error {
	result := r.DB.WithContext(ctx).Model(&domain.Horse{}).Where("id = ?", id).Update("stress_level", stressLevel)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("horse not found")
	}

	return nil
}
