package repository

import (
	"context"
	"time"

	"oabplanner/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Append records a sale. Sales are never updated, and a sale whose EventID
// is already stored is skipped.
func (r *SaleRepository) Append(ctx context.Context, sale *models.SaleRecord) error {
	sale.Email = NormalizeEmail(sale.Email)
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(sale).Error
}

func (r *SaleRepository) ListByEmail(ctx context.Context, email string) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	err := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		Order("created_at").
		Find(&sales).Error
	return sales, err
}
