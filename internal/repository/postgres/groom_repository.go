package postgres

import (
	"context"
	"errors"
	"time"

	"stableCraft/domain"

	"gorm.io/gorm"
)

type GroomRepository struct {
	DB *gorm.DB
}

func NewGroomRepository(db *gorm.DB) *GroomRepository {
	return &GroomRepository{
		DB: db,
	}
}

func (r *GroomRepository) Create(ctx context.Context, groom *domain.Groom) error {
	if err := r.DB.WithContext(ctx).Create(&groom).Error; err != nil {
		return err
	}

	return nil
}

func (r *GroomRepository) FindByID(ctx context.Context, id uint) (domain.Groom, error) {
	var groom domain.Groom

	err := r.DB.WithContext(ctx).First(&groom, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Groom{}, errors.New("groom not found")
		}
		return domain.Groom{}, err
	}

	return groom, nil
}

func (r *GroomRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Groom, error) {
	var grooms []domain.Groom

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&grooms).Error; err != nil {
		return nil, err
	}

	return grooms, nil
}

func (r *GroomRepository) Update(ctx context.Context, groom *domain.Groom) error {
	var existing domain.Groom
	if err := r.DB.WithContext(ctx).First(&existing, groom.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("groom not found")
		}
		return err
	}

	groom.UpdatedAt = time.Now()

	if err := r.DB.WithContext(ctx).Model(&domain.Groom{}).Where("id = ?", groom.ID).
		Select("name", "personality", "skill_level", "updated_at").
		Updates(groom).Error; err != nil {
		return err
	}

	return nil
}

func (r *GroomRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Groom{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("groom not found or already deleted")
	}

	return nil
}
