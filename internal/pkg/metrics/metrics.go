package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SurveysStarted counts /start events that created a fresh session.
	SurveysStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custdev_surveys_started_total",
		Help: "Number of survey sessions started.",
	})

	// SurveysCompleted counts sessions that reached finalization, by result.
	SurveysCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custdev_surveys_completed_total",
		Help: "Number of survey sessions finalized, labelled by persistence result.",
	}, []string{"result"})

	// SurveysCancelled counts explicit /cancel events.
	SurveysCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custdev_surveys_cancelled_total",
		Help: "Number of survey sessions cancelled by the user.",
	})

	// AnswersAccepted counts accepted transitions.
	AnswersAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custdev_answers_accepted_total",
		Help: "Number of accepted answer submissions.",
	})

	// AnswersRejected counts rejected transitions by reason.
	AnswersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custdev_answers_rejected_total",
		Help: "Number of rejected answer submissions, labelled by rejection reason.",
	}, []string{"reason"})
)
