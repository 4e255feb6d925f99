// Package gate decides where an authentication state lands: login,
// profile setup or the dashboard.
package gate

import (
	"context"
	"errors"
	"time"

	"oabplanner/backend/models"
	"oabplanner/backend/repository"
)

type Destination string

const (
	DestinationLogin        Destination = "login"
	DestinationProfileSetup Destination = "profile_setup"
	DestinationDashboard    Destination = "dashboard"
)

type ProfileStore interface {
	Get(ctx context.Context, id string) (*models.UserProfile, error)
	SaveLogin(ctx context.Context, profile *models.UserProfile) error
}

// Route is the outcome of Resolve. Profile holds whatever is stored, so
// the setup form can be pre-filled.
type Route struct {
	Destination Destination         `json:"destination"`
	Profile     *models.UserProfile `json:"profile,omitempty"`
}

type Gate struct {
	profiles ProfileStore
	now      func() time.Time
}

func New(profiles ProfileStore) *Gate {
	return &Gate{profiles: profiles, now: time.Now}
}

// Resolve routes an authenticated user by profile state. An empty userID
// means the caller is signed out.
func (g *Gate) Resolve(ctx context.Context, userID string) (Route, error) {
	if userID == "" {
		return Route{Destination: DestinationLogin}, nil
	}

	profile, err := g.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Route{Destination: DestinationProfileSetup}, nil
	}
	if err != nil {
		return Route{}, err
	}
	if !profile.ProfileComplete {
		return Route{Destination: DestinationProfileSetup, Profile: profile}, nil
	}
	return Route{Destination: DestinationDashboard, Profile: profile}, nil
}

// RecordLogin updates the streak counters of an existing profile. Users
// without a profile yet have nothing to update.
func (g *Gate) RecordLogin(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := g.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !ApplyLogin(profile, g.now()) {
		return profile, nil
	}
	if err := g.profiles.SaveLogin(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ApplyLogin recomputes the streak for a login at now and reports whether
// the profile changed. A second login on the same day changes nothing; a
// login the day after the last one extends the streak; anything later
// restarts it.
func ApplyLogin(profile *models.UserProfile, now time.Time) bool {
	today := dayOf(now)

	if profile.LastLoginAt != nil {
		last := dayOf(profile.LastLoginAt.In(now.Location()))
		switch {
		case !today.After(last):
			return false
		case last.AddDate(0, 0, 1).Equal(today):
			profile.StreakDays++
		default:
			profile.StreakDays = 1
		}
	} else {
		profile.StreakDays = 1
	}

	profile.StudyDays++
	profile.LastLoginAt = &now
	return true
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
