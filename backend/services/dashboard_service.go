package services

import (
	"context"
	"errors"
	"time"

	"oabplanner/backend/models"
	"oabplanner/backend/quiz"
	"oabplanner/backend/repository"

	"go.uber.org/zap"
)

const chartDays = 7

type ModeEntry struct {
	Mode        StudyMode `json:"mode"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	Count       int64     `json:"count,omitempty"`
}

// Menu is the home screen: the subject of the day plus every way to study.
type Menu struct {
	CycleSubject  string      `json:"cycle_subject"`
	CyclePosition int         `json:"cycle_position"`
	Cycle         []string    `json:"cycle"`
	DailyGoal     int         `json:"daily_goal"`
	Modes         []ModeEntry `json:"modes"`
	Subjects      []string    `json:"subjects"`
	Editions      []string    `json:"editions"`
}

type DashboardService struct {
	store  *repository.Store
	cache  repository.StatsCache
	cycle  quiz.StudyCycle
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(store *repository.Store, cache repository.StatsCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		cache:  cache,
		cycle:  quiz.DefaultCycle,
		logger: logger,
		now:    time.Now,
	}
}

// Stats aggregates the user's notebook and progress history. Results are
// cached until the next answer or completed session.
func (d *DashboardService) Stats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	cached, err := d.cache.Get(ctx, userID)
	if err != nil {
		d.logger.Warn("stats cache read failed", zap.String("user_id", userID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	profile, err := d.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	correct, err := d.store.Notebook.Count(ctx, userID, models.OutcomeCorrect)
	if err != nil {
		return nil, err
	}
	incorrect, err := d.store.Notebook.Count(ctx, userID, models.OutcomeMistake)
	if err != nil {
		return nil, err
	}
	sessions, err := d.store.Progress.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	chart, err := d.store.Progress.DailySeries(ctx, userID, chartDays, d.now())
	if err != nil {
		return nil, err
	}

	answered := correct + incorrect
	stats := &models.DashboardStats{
		Correct:           correct,
		Incorrect:         incorrect,
		Answered:          answered,
		Accuracy:          quiz.Accuracy(int(correct), int(answered)),
		SessionsCompleted: sessions,
		StreakDays:        profile.StreakDays,
		StudyDays:         profile.StudyDays,
		DailyGoal:         profile.DailyGoal,
		CycleSubject:      d.cycle.Subject(profile.CyclePosition),
		CyclePosition:     d.cycle.Normalize(profile.CyclePosition),
		Chart:             chart,
	}

	if err := d.cache.Set(ctx, userID, stats); err != nil {
		d.logger.Warn("stats cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return stats, nil
}

func (d *DashboardService) Menu(ctx context.Context, userID string) (*Menu, error) {
	profile, err := d.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	mistakes, err := d.store.Notebook.Count(ctx, userID, models.OutcomeMistake)
	if err != nil {
		return nil, err
	}
	corrects, err := d.store.Notebook.Count(ctx, userID, models.OutcomeCorrect)
	if err != nil {
		return nil, err
	}
	subjects, err := d.store.Questions.Subjects(ctx)
	if err != nil {
		return nil, err
	}
	editions, err := d.store.Questions.Editions(ctx)
	if err != nil {
		return nil, err
	}

	subject := d.cycle.Subject(profile.CyclePosition)
	return &Menu{
		CycleSubject:  subject,
		CyclePosition: d.cycle.Normalize(profile.CyclePosition),
		Cycle:         d.cycle,
		DailyGoal:     profile.DailyGoal,
		Subjects:      subjects,
		Editions:      editions,
		Modes: []ModeEntry{
			{Mode: StudyGuided, Title: "Planner do dia", Description: subject, Available: profile.ProfileComplete},
			{Mode: StudyFree, Title: "Treino livre", Description: "Questões por matéria ou edição", Available: len(subjects) > 0},
			{Mode: StudyMistakes, Title: "Caderno de erros", Description: "Refaça as questões que você errou", Available: mistakes > 0, Count: mistakes},
			{Mode: StudyCorrects, Title: "Caderno de acertos", Description: "Revise as questões que você acertou", Available: corrects > 0, Count: corrects},
			{Mode: StudyMock, Title: "Simulado", Description: "Prova cronometrada", Available: len(subjects) > 0},
		},
	}, nil
}

// profile falls back to an empty profile so a fresh account still gets a
// dashboard.
func (d *DashboardService) profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := d.store.Profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.UserProfile{ID: userID}, nil
	}
	return profile, err
}
