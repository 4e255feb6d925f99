// Package quiz holds the quiz session state machine, the study cycle and
// the per-user session registry. Nothing here knows about HTTP or storage.
package quiz

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"oabplanner/backend/models"
)

var (
	ErrInvalidOperation = errors.New("invalid quiz operation")
	ErrEmptySession     = errors.New("quiz session needs at least one question")
	ErrNoSession        = errors.New("no active quiz session")
)

// Mode is the return destination of a session. It decides the termination
// rule: menu sessions stop at the daily goal, free sessions run out the list.
type Mode string

const (
	ModeMenu Mode = "menu"
	ModeFree Mode = "free"
)

type State string

const (
	StateIdle      State = "idle"
	StateSelecting State = "selecting"
	StateConfirmed State = "confirmed"
	StateCompleted State = "completed"
)

type EndReason string

const (
	EndNone         EndReason = ""
	EndExhausted    EndReason = "exhausted"
	EndGoalReached  EndReason = "goal_reached"
	EndTimerExpired EndReason = "timer_expired"
	EndUserExited   EndReason = "user_exited"
)

// ProducesReport is false only for sessions the user walked away from.
func (r EndReason) ProducesReport() bool {
	return r == EndExhausted || r == EndGoalReached || r == EndTimerExpired
}

type Tally struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Total     int `json:"total"`
}

type Options struct {
	Title           string
	Subject         string
	Mode            Mode
	DailyGoal       int
	DurationSeconds int
}

// AnswerResult describes a confirmed answer so the caller can record it.
type AnswerResult struct {
	Question models.Question
	Selected string
	Correct  bool
}

// Session is a single quiz run. It is safe for concurrent use because the
// countdown goroutine ticks it while requests drive the other transitions.
type Session struct {
	mu        sync.Mutex
	questions []models.Question
	opts      Options
	cursor    int
	selected  string
	state     State
	tally     Tally
	remaining int
	reason    EndReason
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Start (re)initialises the session with a non-empty question list.
func (s *Session) Start(questions []models.Question, opts Options) error {
	if len(questions) == 0 {
		return ErrEmptySession
	}
	if opts.Mode == "" {
		opts.Mode = ModeFree
	}
	if opts.DurationSeconds < 0 {
		opts.DurationSeconds = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = append([]models.Question(nil), questions...)
	s.opts = opts
	s.cursor = 0
	s.selected = ""
	s.tally = Tally{}
	s.remaining = opts.DurationSeconds
	s.reason = EndNone
	s.state = StateSelecting
	return nil
}

func (s *Session) SelectOption(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSelecting {
		return fmt.Errorf("%w: cannot select an option while %s", ErrInvalidOperation, s.state)
	}
	label = strings.ToUpper(strings.TrimSpace(label))
	if !validLabel(label) {
		return fmt.Errorf("%w: unknown option %q", ErrInvalidOperation, label)
	}
	s.selected = label
	return nil
}

// ConfirmAnswer scores the current selection. It succeeds at most once per
// question; later calls are rejected and leave the tally alone.
func (s *Session) ConfirmAnswer() (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSelecting {
		return AnswerResult{}, fmt.Errorf("%w: cannot confirm while %s", ErrInvalidOperation, s.state)
	}
	if s.selected == "" {
		return AnswerResult{}, fmt.Errorf("%w: no option selected", ErrInvalidOperation)
	}

	q := s.questions[s.cursor]
	correct := q.IsCorrect(s.selected)
	if correct {
		s.tally.Correct++
	} else {
		s.tally.Incorrect++
	}
	s.tally.Total++
	s.state = StateConfirmed

	return AnswerResult{Question: q, Selected: s.selected, Correct: correct}, nil
}

// Advance moves past a confirmed question and reports whether the session
// is now complete.
func (s *Session) Advance() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateConfirmed {
		return false, fmt.Errorf("%w: cannot advance while %s", ErrInvalidOperation, s.state)
	}

	s.cursor++
	switch {
	case s.cursor >= len(s.questions):
		s.complete(EndExhausted)
	case s.opts.Mode == ModeMenu && s.opts.DailyGoal > 0 && s.cursor >= s.opts.DailyGoal:
		s.complete(EndGoalReached)
	default:
		s.selected = ""
		s.state = StateSelecting
	}
	return s.state == StateCompleted, nil
}

// Tick consumes one second of an armed countdown and reports whether this
// tick expired the session. Untimed or finished sessions ignore it.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.DurationSeconds <= 0 || !s.inProgress() {
		return false
	}
	s.remaining--
	if s.remaining > 0 {
		return false
	}
	s.remaining = 0
	s.complete(EndTimerExpired)
	return true
}

// Exit abandons the session without a report.
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inProgress() {
		return fmt.Errorf("%w: nothing to exit while %s", ErrInvalidOperation, s.state)
	}
	s.complete(EndUserExited)
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Tally() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

func (s *Session) Reason() EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

func (s *Session) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Finished reports whether the session reached a terminal state.
func (s *Session) Finished() bool {
	return s.State() == StateCompleted
}

// Report returns the results of a naturally completed session.
func (s *Session) Report() (Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted || !s.reason.ProducesReport() {
		return Report{}, false
	}
	return s.report(), true
}

func (s *Session) inProgress() bool {
	return s.state == StateSelecting || s.state == StateConfirmed
}

func (s *Session) complete(reason EndReason) {
	s.state = StateCompleted
	s.reason = reason
	s.selected = ""
}

// plannedLength is the number of questions the session will ask at most.
func (s *Session) plannedLength() int {
	n := len(s.questions)
	if s.opts.Mode == ModeMenu && s.opts.DailyGoal > 0 && s.opts.DailyGoal < n {
		return s.opts.DailyGoal
	}
	return n
}

func validLabel(label string) bool {
	for _, l := range models.OptionLabels {
		if l == label {
			return true
		}
	}
	return false
}
