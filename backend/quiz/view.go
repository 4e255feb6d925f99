package quiz

import (
	"math"

	"oabplanner/backend/models"
)

type Report struct {
	Title         string    `json:"title"`
	Subject       string    `json:"subject,omitempty"`
	Mode          Mode      `json:"mode"`
	Reason        EndReason `json:"reason"`
	Tally         Tally     `json:"tally"`
	QuestionCount int       `json:"question_count"`
	Accuracy      float64   `json:"accuracy"`
}

// AdvancesCycle reports whether finishing this session moves the study
// cycle forward.
func (r Report) AdvancesCycle() bool {
	return r.Mode == ModeMenu && r.Reason.ProducesReport()
}

type OptionView struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Correct  bool   `json:"correct,omitempty"`
}

type QuestionView struct {
	ID        string       `json:"id"`
	Subject   string       `json:"subject"`
	Edition   string       `json:"edition"`
	Topic     string       `json:"topic"`
	Statement string       `json:"statement"`
	Options   []OptionView `json:"options"`
}

// View is everything a client needs to draw the session. The correct label
// and explanation stay empty until the current answer is confirmed.
type View struct {
	Title            string        `json:"title"`
	Mode             Mode          `json:"mode"`
	State            State         `json:"state"`
	Position         int           `json:"position"`
	Count            int           `json:"count"`
	Question         *QuestionView `json:"question,omitempty"`
	Selected         string        `json:"selected,omitempty"`
	CorrectLabel     string        `json:"correct_label,omitempty"`
	Explanation      string        `json:"explanation,omitempty"`
	AnsweredCorrect  *bool         `json:"answered_correct,omitempty"`
	Tally            Tally         `json:"tally"`
	Timed            bool          `json:"timed"`
	RemainingSeconds int           `json:"remaining_seconds"`
	EndReason        EndReason     `json:"end_reason,omitempty"`
	Report           *Report       `json:"report,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Title:            s.opts.Title,
		Mode:             s.opts.Mode,
		State:            s.state,
		Count:            s.plannedLength(),
		Tally:            s.tally,
		Timed:            s.opts.DurationSeconds > 0,
		RemainingSeconds: s.remaining,
		EndReason:        s.reason,
	}

	if s.state == StateCompleted {
		v.Position = s.cursor
		if s.reason.ProducesReport() {
			r := s.report()
			v.Report = &r
		}
		return v
	}
	if s.state == StateIdle {
		return v
	}

	q := s.questions[s.cursor]
	confirmed := s.state == StateConfirmed
	v.Position = s.cursor + 1
	v.Selected = s.selected

	qv := &QuestionView{
		ID:        q.ID,
		Subject:   q.Subject,
		Edition:   q.Edition,
		Topic:     q.Topic,
		Statement: q.Statement,
	}
	for _, label := range models.OptionLabels {
		qv.Options = append(qv.Options, OptionView{
			Label:    label,
			Text:     q.Option(label),
			Selected: label == s.selected,
			Correct:  confirmed && q.IsCorrect(label),
		})
	}
	v.Question = qv

	if confirmed {
		correct := q.IsCorrect(s.selected)
		v.AnsweredCorrect = &correct
		v.CorrectLabel = q.Correct
		v.Explanation = q.Explanation
	}
	return v
}

func (s *Session) report() Report {
	r := Report{
		Title:         s.opts.Title,
		Subject:       s.opts.Subject,
		Mode:          s.opts.Mode,
		Reason:        s.reason,
		Tally:         s.tally,
		QuestionCount: s.plannedLength(),
	}
	r.Accuracy = Accuracy(s.tally.Correct, s.tally.Total)
	return r
}

// Accuracy is correct/total as a percentage rounded to one decimal.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}
