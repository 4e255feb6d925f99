package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oabplanner/backend/models"
	"oabplanner/backend/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RecentLoginWindow bounds how old a sign-in may be when the password is
// changed.
const RecentLoginWindow = 5 * time.Minute

var ErrRequiresRecentLogin = errors.New("sign in again to change your password")

type ProfileInput struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Phone       string `json:"phone" validate:"omitempty,min=8,max=20"`
	BirthDate   string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	DailyGoal   int    `json:"daily_goal" validate:"required,min=1,max=200"`
	NewPassword string `json:"new_password" validate:"omitempty,min=6,max=72"`
}

type ProfileService struct {
	store  *repository.Store
	cache  repository.StatsCache
	logger *zap.Logger
	now    func() time.Time
}

func NewProfileService(store *repository.Store, cache repository.StatsCache, logger *zap.Logger) *ProfileService {
	return &ProfileService{store: store, cache: cache, logger: logger, now: time.Now}
}

func (p *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	return p.store.Profiles.Get(ctx, userID)
}

// Save stores the profile and marks it complete. A password change is
// refused, before anything is written, when signedInAt is older than
// RecentLoginWindow. The profile and the password are written together or
// not at all.
func (p *ProfileService) Save(ctx context.Context, userID string, signedInAt time.Time, in ProfileInput) (*models.UserProfile, error) {
	var hash []byte
	if in.NewPassword != "" {
		if p.now().Sub(signedInAt) > RecentLoginWindow {
			return nil, ErrRequiresRecentLogin
		}
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost); err != nil {
			return nil, err
		}
	}

	var profile *models.UserProfile
	err := p.store.Transaction(ctx, func(tx *repository.Store) error {
		err := tx.Profiles.SaveDetails(ctx, &models.UserProfile{
			ID:              userID,
			Name:            in.Name,
			Phone:           in.Phone,
			BirthDate:       in.BirthDate,
			DailyGoal:       in.DailyGoal,
			ProfileComplete: true,
		})
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		if hash != nil {
			if err := tx.Accounts.UpdatePassword(ctx, userID, string(hash)); err != nil {
				return fmt.Errorf("update password: %w", err)
			}
		}
		profile, err = tx.Profiles.Get(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if hash != nil {
		p.logger.Info("password changed", zap.String("user_id", userID))
	}

	if err := p.cache.Invalidate(ctx, userID); err != nil {
		p.logger.Warn("stats cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
	return profile, nil
}
