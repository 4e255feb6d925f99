package repository

import (
	"context"
	"time"

	"oabplanner/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Get(ctx context.Context, userID, subject string) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject = ?", userID, subject).
		First(&note).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &note, nil
}

func (r *NoteRepository) Upsert(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(note).Error
}

func (r *NoteRepository) List(ctx context.Context, userID string) ([]models.Note, error) {
	var notes []models.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("subject").
		Find(&notes).Error
	return notes, err
}
