package models

import "time"

type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_note_user_subject" json:"user_id"`
	Subject   string    `gorm:"not null;uniqueIndex:idx_note_user_subject" json:"subject"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
