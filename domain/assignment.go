package domain

import "time"

// GroomAssignment links a groom to a horse for a span of daily care.
// EndedAt nil means the assignment is still running; a horse has at most
// one running assignment at a time.
type GroomAssignment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	GroomID   uint       `gorm:"column:groom_id;not null" json:"groom_id"`
	HorseID   uint       `gorm:"column:horse_id;not null" json:"horse_id"`
	BondScore int        `gorm:"column:bond_score;default:0" json:"bond_score"`
	StartedAt time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt   *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (GroomAssignment) TableName() string {
	return "groom_assignments"
}

func (a GroomAssignment) Active() bool {
	return a.EndedAt == nil
}
