package domain

import (
	"time"

	"gorm.io/datatypes"
)

// MilestoneType identifies a developmental window in a foal's first year.
type MilestoneType string

const (
	MilestoneImprinting    MilestoneType = "imprinting"
	MilestoneSocialization MilestoneType = "socialization"
	MilestoneHalterIntro   MilestoneType = "halter_intro"
	MilestoneLeadingBasics MilestoneType = "leading_basics"
	MilestoneGroundManners MilestoneType = "ground_manners"
)

func (m MilestoneType) Valid() bool {
	switch m {
	case MilestoneImprinting, MilestoneSocialization, MilestoneHalterIntro,
		MilestoneLeadingBasics, MilestoneGroundManners:
		return true
	}
	return false
}

// CREATE TABLE public.trait_milestones (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     horse_id        BIGINT NOT NULL,
//     groom_id        BIGINT,
//     milestone_type  TEXT NOT NULL,
//     window_start    TIMESTAMPTZ NOT NULL,
//     window_end      TIMESTAMPTZ NOT NULL,
//     base_score      INT,
//     final_score     INT,
//     final_stress    NUMERIC,
//     bonding_rate    INT,
//     coverage        NUMERIC,
//     trait_acquired  TEXT,
//     bonus_applied   BOOLEAN DEFAULT FALSE,
//     context         JSONB,
//     evaluated_at    TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (horse_id, milestone_type)
// );

type TraitMilestone struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	HorseID       uint              `gorm:"column:horse_id;not null" json:"horse_id"`
	GroomID       uint              `gorm:"column:groom_id" json:"groom_id"` // 0 when no groom covered the window
	MilestoneType MilestoneType     `gorm:"column:milestone_type;not null" json:"milestone_type"`
	WindowStart   time.Time         `gorm:"column:window_start;not null" json:"window_start"`
	WindowEnd     time.Time         `gorm:"column:window_end;not null" json:"window_end"`
	BaseScore     int               `gorm:"column:base_score" json:"base_score"`
	FinalScore    int               `gorm:"column:final_score" json:"final_score"`
	FinalStress   float64           `gorm:"column:final_stress" json:"final_stress"`
	BondingRate   int               `gorm:"column:bonding_rate" json:"bonding_rate"`
	Coverage      float64           `gorm:"column:coverage" json:"coverage"`
	TraitAcquired string            `gorm:"column:trait_acquired" json:"trait_acquired,omitempty"`
	BonusApplied  bool              `gorm:"column:bonus_applied;default:false" json:"bonus_applied"`
	Context       datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	EvaluatedAt   time.Time         `gorm:"column:evaluated_at;autoCreateTime" json:"evaluated_at"`
}

func (TraitMilestone) TableName() string {
	return "trait_milestones"
}
