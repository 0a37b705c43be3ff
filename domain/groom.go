package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Personality is a groom's working style. Like Temperament the set is
// closed; the compatibility matrix is keyed on these values.
type Personality string

const (
	PersonalityCalm       Personality = "calm"
	PersonalityEnergetic  Personality = "energetic"
	PersonalityReserved   Personality = "reserved"
	PersonalitySoftSpoken Personality = "soft_spoken"
	PersonalityPatient    Personality = "patient"
	PersonalityAssertive  Personality = "assertive"
)

// ParsePersonality normalizes free-form input to a known personality.
// Unknown or empty input yields the zero value, never an error.
func ParsePersonality(s string) Personality {
	p := Personality(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p
	}
	return ""
}

func (p Personality) Valid() bool {
	switch p {
	case PersonalityCalm, PersonalityEnergetic, PersonalityReserved,
		PersonalitySoftSpoken, PersonalityPatient, PersonalityAssertive:
		return true
	}
	return false
}

// BonusTraitMap maps an epigenetic trait name to the probability increment
// the groom contributes when bond and coverage conditions are met.
type BonusTraitMap map[string]float64

type Groom struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"column:user_id;not null" json:"user_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Personality Personality    `gorm:"column:personality;type:text;not null" json:"personality"`
	SkillLevel  int            `gorm:"column:skill_level;default:1" json:"skill_level"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Groom) TableName() string {
	return "grooms"
}
