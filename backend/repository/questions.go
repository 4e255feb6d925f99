package repository

import (
	"context"

	"oabplanner/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionFilter struct {
	Subject string
	Edition string
	Limit   int
}

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) List(ctx context.Context, f QuestionFilter) ([]models.Question, error) {
	q := r.db.WithContext(ctx).Model(&models.Question{})
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	if f.Edition != "" {
		q = q.Where("edition = ?", f.Edition)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var questions []models.Question
	err := q.Order("id").Find(&questions).Error
	return questions, err
}

// Create stores a question under a fresh ID unless one is set.
func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuestionRepository) Subjects(ctx context.Context) ([]string, error) {
	var subjects []string
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Distinct("subject").
		Order("subject").
		Pluck("subject", &subjects).Error
	return subjects, err
}

func (r *QuestionRepository) Editions(ctx context.Context) ([]string, error) {
	var editions []string
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("edition <> ''").
		Distinct("edition").
		Order("edition").
		Pluck("edition", &editions).Error
	return editions, err
}
