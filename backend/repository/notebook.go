package repository

import (
	"context"

	"oabplanner/backend/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const clearConcurrency = 8

type NotebookRepository struct {
	db *gorm.DB
}

func NewNotebookRepository(db *gorm.DB) *NotebookRepository {
	return &NotebookRepository{db: db}
}

// Record stores the answer, refreshing the snapshot when the user already
// has the same question under the same outcome.
func (r *NotebookRepository) Record(ctx context.Context, answer *models.AnsweredQuestion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}, {Name: "outcome"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected", "subject", "edition", "topic", "statement",
			"option_a", "option_b", "option_c", "option_d",
			"correct", "explanation", "answered_at",
		}),
	}).Create(answer).Error
}

func (r *NotebookRepository) List(ctx context.Context, userID string, outcome models.Outcome) ([]models.AnsweredQuestion, error) {
	var answers []models.AnsweredQuestion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND outcome = ?", userID, outcome).
		Order("answered_at DESC").
		Find(&answers).Error
	return answers, err
}

func (r *NotebookRepository) Count(ctx context.Context, userID string, outcome models.Outcome) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AnsweredQuestion{}).
		Where("user_id = ? AND outcome = ?", userID, outcome).
		Count(&n).Error
	return n, err
}

// Clear deletes every answer of one outcome. The deletes are independent
// and issued concurrently; the first failure cancels the rest.
func (r *NotebookRepository) Clear(ctx context.Context, userID string, outcome models.Outcome) (int, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.AnsweredQuestion{}).
		Where("user_id = ? AND outcome = ?", userID, outcome).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(clearConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return r.db.WithContext(gctx).Delete(&models.AnsweredQuestion{}, id).Error
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(ids), nil
}
