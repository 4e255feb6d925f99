package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oabplanner/backend/metrics"
	"oabplanner/backend/models"
	"oabplanner/backend/quiz"
	"oabplanner/backend/repository"

	"go.uber.org/zap"
)

type StudyMode string

const (
	StudyGuided   StudyMode = "guided"
	StudyFree     StudyMode = "free"
	StudyMistakes StudyMode = "mistakes"
	StudyCorrects StudyMode = "corrects"
	StudyMock     StudyMode = "mock"
)

const (
	mockExamQuestions = 80
	mockExamMinutes   = 300
	expiryTimeout     = 10 * time.Second
)

var (
	ErrProfileRequired = errors.New("complete your profile before using the planner")
	ErrUnknownAction   = errors.New("unknown quiz action")
	ErrUnknownMode     = errors.New("unknown study mode")
)

type StartRequest struct {
	Mode            StudyMode `json:"mode" validate:"required,oneof=guided free mistakes corrects mock"`
	Subject         string    `json:"subject" validate:"max=120"`
	Edition         string    `json:"edition" validate:"max=60"`
	Limit           int       `json:"limit" validate:"min=0,max=200"`
	DurationMinutes int       `json:"duration_minutes" validate:"min=0,max=300"`
}

// Command is a named quiz action. Label is only read by "select".
type Command struct {
	Action string `json:"-"`
	Label  string `json:"label"`
}

type actionFunc func(ctx context.Context, userID string, session *quiz.Session, cmd Command) error

// StudyService launches quiz sessions and applies their side effects:
// answers go to the notebook at confirm time, completed sessions become
// progress records and move the study cycle.
type StudyService struct {
	store    *repository.Store
	cache    repository.StatsCache
	logger   *zap.Logger
	cycle    quiz.StudyCycle
	registry *quiz.Registry
	actions  map[string]actionFunc
	now      func() time.Time
	shuffle  func([]models.Question) []models.Question
}

func NewStudyService(store *repository.Store, cache repository.StatsCache, logger *zap.Logger, opts ...quiz.RegistryOption) *StudyService {
	s := &StudyService{
		store:   store,
		cache:   cache,
		logger:  logger,
		cycle:   quiz.DefaultCycle,
		now:     time.Now,
		shuffle: quiz.Shuffle,
	}
	s.registry = quiz.NewRegistry(s.onExpiry, opts...)
	s.actions = map[string]actionFunc{
		"select":  s.selectOption,
		"confirm": s.confirm,
		"advance": s.advance,
		"view":    func(context.Context, string, *quiz.Session, Command) error { return nil },
	}
	return s
}

// Start launches a session for the requested mode, replacing any session
// the user already has.
func (s *StudyService) Start(ctx context.Context, userID string, req StartRequest) (quiz.View, error) {
	questions, opts, err := s.plan(ctx, userID, req)
	if err != nil {
		return quiz.View{}, err
	}

	session, err := s.registry.Start(userID, questions, opts)
	if err != nil {
		return quiz.View{}, err
	}
	metrics.QuizSessionsStarted.WithLabelValues(string(req.Mode)).Inc()

	s.logger.Info("quiz session started",
		zap.String("user_id", userID),
		zap.String("study_mode", string(req.Mode)),
		zap.Int("questions", len(questions)),
	)
	return session.View(), nil
}

// Current returns the view of the user's session.
func (s *StudyService) Current(userID string) (quiz.View, error) {
	session, err := s.registry.Get(userID)
	if err != nil {
		return quiz.View{}, err
	}
	return session.View(), nil
}

// Dispatch runs one quiz action by name and returns the resulting view.
func (s *StudyService) Dispatch(ctx context.Context, userID string, cmd Command) (quiz.View, error) {
	if cmd.Action == "exit" {
		return s.exit(userID)
	}

	action, ok := s.actions[cmd.Action]
	if !ok {
		return quiz.View{}, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}

	session, err := s.registry.Get(userID)
	if err != nil {
		return quiz.View{}, err
	}
	if err := action(ctx, userID, session, cmd); err != nil {
		return quiz.View{}, err
	}
	return session.View(), nil
}

func (s *StudyService) selectOption(_ context.Context, _ string, session *quiz.Session, cmd Command) error {
	return session.SelectOption(cmd.Label)
}

func (s *StudyService) confirm(ctx context.Context, userID string, session *quiz.Session, _ Command) error {
	res, err := session.ConfirmAnswer()
	if err != nil {
		return err
	}

	outcome := models.OutcomeMistake
	if res.Correct {
		outcome = models.OutcomeCorrect
	}
	metrics.AnswersConfirmed.WithLabelValues(string(outcome)).Inc()

	answer := models.NewAnsweredQuestion(userID, res.Question, res.Selected, outcome, s.now())
	if err := s.store.Notebook.Record(ctx, &answer); err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *StudyService) advance(ctx context.Context, userID string, session *quiz.Session, _ Command) error {
	done, err := session.Advance()
	if err != nil || !done {
		return err
	}
	if report, ok := s.registry.Finish(userID, session); ok {
		return s.complete(ctx, userID, report)
	}
	return nil
}

func (s *StudyService) exit(userID string) (quiz.View, error) {
	session, err := s.registry.Get(userID)
	if err != nil {
		return quiz.View{}, err
	}
	if err := s.registry.Exit(userID); err != nil {
		return quiz.View{}, err
	}
	if session.Reason() == quiz.EndUserExited {
		metrics.QuizSessionsFinished.WithLabelValues(string(quiz.EndUserExited)).Inc()
	}
	return session.View(), nil
}

// complete records a naturally finished session.
func (s *StudyService) complete(ctx context.Context, userID string, report quiz.Report) error {
	metrics.QuizSessionsFinished.WithLabelValues(string(report.Reason)).Inc()

	record := &models.ProgressRecord{
		UserID:    userID,
		Title:     report.Title,
		Subject:   report.Subject,
		Mode:      string(report.Mode),
		Correct:   report.Tally.Correct,
		Incorrect: report.Tally.Incorrect,
		Total:     report.Tally.Total,
		EndReason: string(report.Reason),
		CreatedAt: s.now(),
	}
	if err := s.store.Progress.Create(ctx, record); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}

	if report.AdvancesCycle() {
		profile, err := s.store.Profiles.Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		next := s.cycle.Next(profile.CyclePosition)
		if err := s.store.Profiles.SetCyclePosition(ctx, userID, next); err != nil {
			return fmt.Errorf("advance study cycle: %w", err)
		}
	}

	s.invalidate(ctx, userID)
	s.logger.Info("quiz session completed",
		zap.String("user_id", userID),
		zap.String("reason", string(report.Reason)),
		zap.Int("correct", report.Tally.Correct),
		zap.Int("total", report.Tally.Total),
	)
	return nil
}

func (s *StudyService) onExpiry(userID string, report quiz.Report) {
	ctx, cancel := context.WithTimeout(context.Background(), expiryTimeout)
	defer cancel()

	if err := s.complete(ctx, userID, report); err != nil {
		s.logger.Error("failed to record expired session", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *StudyService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *StudyService) plan(ctx context.Context, userID string, req StartRequest) ([]models.Question, quiz.Options, error) {
	switch req.Mode {
	case StudyGuided:
		profile, err := s.store.Profiles.Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && !profile.ProfileComplete) {
			return nil, quiz.Options{}, ErrProfileRequired
		}
		if err != nil {
			return nil, quiz.Options{}, err
		}

		subject := s.cycle.Subject(profile.CyclePosition)
		questions, err := s.store.Questions.List(ctx, repository.QuestionFilter{Subject: subject})
		if err != nil {
			return nil, quiz.Options{}, err
		}
		return s.shuffle(questions), quiz.Options{
			Title:     "Planner: " + subject,
			Subject:   subject,
			Mode:      quiz.ModeMenu,
			DailyGoal: profile.DailyGoal,
		}, nil

	case StudyFree:
		questions, err := s.store.Questions.List(ctx, repository.QuestionFilter{Subject: req.Subject, Edition: req.Edition})
		if err != nil {
			return nil, quiz.Options{}, err
		}
		title := "Treino livre"
		if req.Subject != "" {
			title = "Treino livre: " + req.Subject
		}
		return capQuestions(s.shuffle(questions), req.Limit), quiz.Options{
			Title:   title,
			Subject: req.Subject,
			Mode:    quiz.ModeFree,
		}, nil

	case StudyMistakes, StudyCorrects:
		outcome, title := models.OutcomeMistake, "Caderno de erros"
		if req.Mode == StudyCorrects {
			outcome, title = models.OutcomeCorrect, "Caderno de acertos"
		}
		answers, err := s.store.Notebook.List(ctx, userID, outcome)
		if err != nil {
			return nil, quiz.Options{}, err
		}
		questions := make([]models.Question, 0, len(answers))
		for _, a := range answers {
			if req.Subject != "" && a.Subject != req.Subject {
				continue
			}
			questions = append(questions, a.Question())
		}
		return capQuestions(questions, req.Limit), quiz.Options{
			Title: title,
			Mode:  quiz.ModeFree,
		}, nil

	case StudyMock:
		questions, err := s.store.Questions.List(ctx, repository.QuestionFilter{Edition: req.Edition})
		if err != nil {
			return nil, quiz.Options{}, err
		}
		limit := req.Limit
		if limit == 0 {
			limit = mockExamQuestions
		}
		minutes := req.DurationMinutes
		if minutes == 0 {
			minutes = mockExamMinutes
		}
		return capQuestions(s.shuffle(questions), limit), quiz.Options{
			Title:           "Simulado",
			Mode:            quiz.ModeFree,
			DurationSeconds: minutes * 60,
		}, nil
	}
	return nil, quiz.Options{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
}

func capQuestions(questions []models.Question, limit int) []models.Question {
	if limit > 0 && len(questions) > limit {
		return questions[:limit]
	}
	return questions
}
