package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Temperament is a horse's innate disposition. The set is closed: gameplay
// rules switch on these values and persistence stores them as text.
type Temperament string

const (
	TemperamentSpirited   Temperament = "spirited"
	TemperamentPlayful    Temperament = "playful"
	TemperamentLazy       Temperament = "lazy"
	TemperamentNervous    Temperament = "nervous"
	TemperamentAggressive Temperament = "aggressive"
	TemperamentDocile     Temperament = "docile"
	TemperamentStubborn   Temperament = "stubborn"
	TemperamentCurious    Temperament = "curious"
)

// ParseTemperament normalizes free-form input to a known temperament.
// Unknown or empty input yields the zero value, never an error.
func ParseTemperament(s string) Temperament {
	t := Temperament(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t
	}
	return ""
}

func (t Temperament) Valid() bool {
	switch t {
	case TemperamentSpirited, TemperamentPlayful, TemperamentLazy,
		TemperamentNervous, TemperamentAggressive, TemperamentDocile,
		TemperamentStubborn, TemperamentCurious:
		return true
	}
	return false
}

type Horse struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"column:user_id;not null" json:"user_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Temperament Temperament    `gorm:"column:temperament;type:text;not null" json:"temperament"`
	DateOfBirth time.Time      `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	StressLevel float64        `gorm:"column:stress_level;default:0" json:"stress_level"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Horse) TableName() string {
	return "horses"
}
