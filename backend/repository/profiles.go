package repository

import (
	"context"

	"oabplanner/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// Save inserts or fully overwrites the profile.
func (r *ProfileRepository) Save(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// SaveDetails inserts the profile or, when it exists, overwrites only the
// fields the user edits. Cycle position and login counters are kept.
func (r *ProfileRepository) SaveDetails(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "phone", "birth_date", "daily_goal", "profile_complete", "updated_at",
			}),
		}).
		Create(profile).Error
}

// SaveLogin writes the login counters of an existing profile.
func (r *ProfileRepository) SaveLogin(ctx context.Context, profile *models.UserProfile) error {
	res := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", profile.ID).
		Select("study_days", "streak_days", "last_login_at").
		Updates(profile)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SetCyclePosition(ctx context.Context, id string, position int) error {
	res := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", id).
		Update("cycle_position", position)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
