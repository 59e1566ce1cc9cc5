package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoresAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golf_score_entries_accepted_total",
		Help: "Ledger rows appended by accepted score submissions.",
	})

	ScoreRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golf_score_rejections_total",
		Help: "Score submissions rejected, by reason.",
	}, []string{"reason"})

	DecisionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golf_game_decisions_total",
		Help: "Game decisions appended.",
	})

	AwardsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golf_bonus_awards_total",
		Help: "Bonus awards recorded.",
	})

	RealtimeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golf_realtime_events_total",
		Help: "Events published to the realtime round channels, by type.",
	}, []string{"type"})
)
