package quiz

import (
	"math/rand"

	"oabplanner/backend/models"
)

// StudyCycle is the fixed order in which the guided planner visits subjects.
type StudyCycle []string

var DefaultCycle = StudyCycle{
	"Ética Profissional",
	"Direito Constitucional",
	"Direito Civil",
	"Direito Processual Civil",
	"Direito Penal",
	"Direito Processual Penal",
	"Direito do Trabalho",
	"Direito Processual do Trabalho",
	"Direito Administrativo",
	"Direito Tributário",
	"Direito Empresarial",
}

// Normalize maps any integer onto a valid index.
func (c StudyCycle) Normalize(pos int) int {
	n := len(c)
	if n == 0 {
		return 0
	}
	pos %= n
	if pos < 0 {
		pos += n
	}
	return pos
}

func (c StudyCycle) Subject(pos int) string {
	if len(c) == 0 {
		return ""
	}
	return c[c.Normalize(pos)]
}

// Next returns the position after pos, wrapping at the end of the cycle.
func (c StudyCycle) Next(pos int) int {
	return c.Normalize(pos + 1)
}

// Shuffle returns a shuffled copy of questions.
func Shuffle(questions []models.Question) []models.Question {
	out := append([]models.Question(nil), questions...)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
