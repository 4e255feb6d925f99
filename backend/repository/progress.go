package repository

import (
	"context"
	"time"

	"oabplanner/backend/models"

	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, record *models.ProgressRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *ProgressRepository) Recent(ctx context.Context, userID string, limit int) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ProgressRecord{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// DailySeries returns one point per calendar day, oldest first, for the
// `days` days ending at now. Days without sessions are zero.
func (r *ProgressRepository) DailySeries(ctx context.Context, userID string, days int, now time.Time) ([]models.DailyProgress, error) {
	if days <= 0 {
		return nil, nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	var records []models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, start).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	series := make([]models.DailyProgress, days)
	index := make(map[string]int, days)
	for i := range series {
		day := start.AddDate(0, 0, i).Format(dayLayout)
		series[i].Day = day
		index[day] = i
	}
	for _, rec := range records {
		i, ok := index[rec.CreatedAt.In(now.Location()).Format(dayLayout)]
		if !ok {
			continue
		}
		series[i].Answered += rec.Total
		series[i].Correct += rec.Correct
	}
	return series, nil
}
