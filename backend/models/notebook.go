package models

import "time"

type Outcome string

const (
	OutcomeMistake Outcome = "mistake"
	OutcomeCorrect Outcome = "correct"
)

// Valid reports whether o names one of the notebook partitions.
func (o Outcome) Valid() bool {
	return o == OutcomeMistake || o == OutcomeCorrect
}

// AnsweredQuestion is a snapshot of a question the user answered, kept in
// the mistakes or correct-answers notebook.
type AnsweredQuestion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;not null;uniqueIndex:idx_answer_user_question_outcome" json:"user_id"`
	QuestionID  string    `gorm:"size:36;not null;uniqueIndex:idx_answer_user_question_outcome" json:"question_id"`
	Outcome     Outcome   `gorm:"size:16;not null;uniqueIndex:idx_answer_user_question_outcome" json:"outcome"`
	Selected    string    `gorm:"size:1" json:"selected"`
	Subject     string    `json:"subject"`
	Edition     string    `json:"edition"`
	Topic       string    `json:"topic"`
	Statement   string    `json:"statement"`
	OptionA     string    `json:"option_a"`
	OptionB     string    `json:"option_b"`
	OptionC     string    `json:"option_c"`
	OptionD     string    `json:"option_d"`
	Correct     string    `gorm:"size:1" json:"correct"`
	Explanation string    `json:"explanation"`
	AnsweredAt  time.Time `json:"answered_at"`
}

// NewAnsweredQuestion snapshots q for the given user and outcome.
func NewAnsweredQuestion(userID string, q Question, selected string, outcome Outcome, at time.Time) AnsweredQuestion {
	return AnsweredQuestion{
		UserID:      userID,
		QuestionID:  q.ID,
		Outcome:     outcome,
		Selected:    selected,
		Subject:     q.Subject,
		Edition:     q.Edition,
		Topic:       q.Topic,
		Statement:   q.Statement,
		OptionA:     q.OptionA,
		OptionB:     q.OptionB,
		OptionC:     q.OptionC,
		OptionD:     q.OptionD,
		Correct:     q.Correct,
		Explanation: q.Explanation,
		AnsweredAt:  at,
	}
}

// Question rebuilds the question from the snapshot for replay sessions.
func (a AnsweredQuestion) Question() Question {
	return Question{
		ID:          a.QuestionID,
		Subject:     a.Subject,
		Edition:     a.Edition,
		Topic:       a.Topic,
		Statement:   a.Statement,
		OptionA:     a.OptionA,
		OptionB:     a.OptionB,
		OptionC:     a.OptionC,
		OptionD:     a.OptionD,
		Correct:     a.Correct,
		Explanation: a.Explanation,
	}
}
