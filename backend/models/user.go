package models

import (
	"time"
)

// Account is the identity record created by the provisioner. The profile
// shares its ID.
type Account struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserProfile struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	BirthDate       string     `json:"birth_date"` // YYYY-MM-DD
	ProfileComplete bool       `gorm:"default:false" json:"profile_complete"`
	DailyGoal       int        `gorm:"default:20" json:"daily_goal"`
	CyclePosition   int        `gorm:"default:0" json:"cycle_position"`
	StudyDays       int        `gorm:"default:0" json:"study_days"`
	StreakDays      int        `gorm:"default:0" json:"streak_days"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
