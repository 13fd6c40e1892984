package telemetry

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jeffschwMSFT/clrkahoot/internal/domain"
	"github.com/jeffschwMSFT/clrkahoot/internal/event"
)

// Metrics exposes game activity counters on the default Prometheus
// registry, fed from the event bus so the game layer carries no metrics
// code.
type Metrics struct {
	roomsCreated       prometheus.Counter
	joins              prometheus.Counter
	ownersElected      prometheus.Counter
	questionsActivated prometheus.Counter
	answers            *prometheus.CounterVec
	ownerDisconnects   prometheus.Counter
}

// MonitorGame registers the collectors and subscribes them to the bus.
func MonitorGame(eb *event.Bus) *Metrics {
	m := &Metrics{
		roomsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quiz_rooms_created_total",
			Help: "Rooms lazily created in the session registry.",
		}),
		joins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quiz_joins_total",
			Help: "Join events processed.",
		}),
		ownersElected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quiz_owners_elected_total",
			Help: "First-join owner elections.",
		}),
		questionsActivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quiz_questions_activated_total",
			Help: "Questions activated for answering via broadcast.",
		}),
		answers: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_answers_recorded_total",
			Help: "Answers recorded, by correctness.",
		}, []string{"correct"}),
		ownerDisconnects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "quiz_owner_disconnects_total",
			Help: "Games ended by the owner disconnecting.",
		}),
	}

	eb.Subscribe(domain.EventNameRoomCreated, func(ctx context.Context, e event.Event) error {
		m.roomsCreated.Inc()
		return nil
	})
	eb.Subscribe(domain.EventNameUserJoined, func(ctx context.Context, e event.Event) error {
		m.joins.Inc()
		return nil
	})
	eb.Subscribe(domain.EventNameOwnerElected, func(ctx context.Context, e event.Event) error {
		m.ownersElected.Inc()
		return nil
	})
	eb.Subscribe(domain.EventNameQuestionActivated, func(ctx context.Context, e event.Event) error {
		m.questionsActivated.Inc()
		return nil
	})
	eb.Subscribe(domain.EventNameAnswerRecorded, func(ctx context.Context, e event.Event) error {
		ev := e.(domain.EventAnswerRecorded)
		m.answers.WithLabelValues(strconv.FormatBool(ev.Correct)).Inc()
		return nil
	})
	eb.Subscribe(domain.EventNameOwnerDisconnected, func(ctx context.Context, e event.Event) error {
		m.ownerDisconnects.Inc()
		return nil
	})

	return m
}
