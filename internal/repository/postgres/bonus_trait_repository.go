package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"stableCraft/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BonusTraitRepository struct {
	DB *gorm.DB
}

func NewBonusTraitRepository(db *gorm.DB) *BonusTraitRepository {
	return &BonusTraitRepository{DB: db}
}

// groomBonusTraitsRow keeps the whole map in one JSONB cell so an assign is
// a single-row upsert and readers never see a partial map.
type groomBonusTraitsRow struct {
	GroomID    uint   `gorm:"column:groom_id;primaryKey"`
	TraitsJSON []byte `gorm:"column:traits_json;type:jsonb"`
}

func (groomBonusTraitsRow) TableName() string {
	return "groom_bonus_traits"
}

func (r *BonusTraitRepository) GetBonusTraits(ctx context.Context, groomID uint) (domain.BonusTraitMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row groomBonusTraitsRow
	err := r.DB.WithContext(ctx).First(&row, "groom_id = ?", groomID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query groom_bonus_traits: %w", err)
	}

	var traits domain.BonusTraitMap
	if err := json.Unmarshal(row.TraitsJSON, &traits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal traits_json: %w", err)
	}

	return traits, nil
}

func (r *BonusTraitRepository) SaveBonusTraits(ctx context.Context, groomID uint, traits domain.BonusTraitMap) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(traits)
	if err != nil {
		return fmt.Errorf("failed to marshal traits: %w", err)
	}

	row := groomBonusTraitsRow{
		GroomID:    groomID,
		TraitsJSON: raw,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "groom_id"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert groom_bonus_traits: %w", err)
	}

	return nil
}
