// Package metrics declares the Prometheus collectors of the planner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planner",
		Name:      "webhook_events_total",
		Help:      "Payment webhook events by type and outcome.",
	}, []string{"type", "outcome"})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planner",
		Name:      "emails_total",
		Help:      "Transactional emails by template and status.",
	}, []string{"template", "status"})

	QuizSessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planner",
		Name:      "quiz_sessions_started_total",
		Help:      "Quiz sessions started by study mode.",
	}, []string{"study_mode"})

	QuizSessionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planner",
		Name:      "quiz_sessions_finished_total",
		Help:      "Quiz sessions finished by end reason.",
	}, []string{"reason"})

	AnswersConfirmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planner",
		Name:      "answers_confirmed_total",
		Help:      "Confirmed answers by outcome.",
	}, []string{"outcome"})
)
