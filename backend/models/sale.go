package models

import "time"

const (
	SaleSourceStripe = "stripe"
	SaleStatusPaid   = "paid"
)

// SaleRecord is append-only. EventID is the payment provider event that
// produced the sale and is nil for imported rows.
type SaleRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	EventID   *string   `gorm:"uniqueIndex;size:255" json:"event_id,omitempty"`
	Email     string    `gorm:"index" json:"email"`
	Name      string    `json:"name"`
	Source    string    `gorm:"size:32" json:"source"`
	Status    string    `gorm:"size:32" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
