package models

import "strings"

// OptionLabels are the four answer labels of every question.
var OptionLabels = []string{"A", "B", "C", "D"}

type Question struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Subject     string `gorm:"index" json:"subject"`
	Edition     string `gorm:"index" json:"edition"`
	Topic       string `json:"topic"`
	Statement   string `json:"statement"`
	OptionA     string `json:"option_a"`
	OptionB     string `json:"option_b"`
	OptionC     string `json:"option_c"`
	OptionD     string `json:"option_d"`
	Correct     string `gorm:"size:1" json:"correct"`
	Explanation string `json:"explanation"`
}

// Option returns the text behind an option label, or "" for unknown labels.
func (q Question) Option(label string) string {
	switch strings.ToUpper(label) {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}

// IsCorrect compares a label with the correct one, ignoring case.
func (q Question) IsCorrect(label string) bool {
	return label != "" && strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(q.Correct))
}
