package models

import "time"

// ProgressRecord is written once per naturally completed quiz session.
type ProgressRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"user_id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Mode      string    `gorm:"size:16" json:"mode"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Total     int       `json:"total"`
	EndReason string    `gorm:"size:32" json:"end_reason"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// DailyProgress is one point of the dashboard chart.
type DailyProgress struct {
	Day      string `json:"day"` // YYYY-MM-DD
	Answered int    `json:"answered"`
	Correct  int    `json:"correct"`
}

type DashboardStats struct {
	Correct           int64           `json:"correct"`
	Incorrect         int64           `json:"incorrect"`
	Answered          int64           `json:"answered"`
	Accuracy          float64         `json:"accuracy"`
	SessionsCompleted int64           `json:"sessions_completed"`
	StreakDays        int             `json:"streak_days"`
	StudyDays         int             `json:"study_days"`
	DailyGoal         int             `json:"daily_goal"`
	CycleSubject      string          `json:"cycle_subject"`
	CyclePosition     int             `json:"cycle_position"`
	Chart             []DailyProgress `json:"chart"`
}
