// Package metrics exports meeting activity as Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/voting"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Observer counts committed meeting transitions.
type Observer struct {
	registry          *prometheus.Registry
	meetingsStarted   prometheus.Counter
	meetingsAdjourned prometheus.Counter
	motionsMade       *prometheus.CounterVec
	motionsResolved   *prometheus.CounterVec
	ballotsCast       prometheus.Counter
	votesClosed       *prometheus.CounterVec
}

// NewObserver registers the committee counters on registry. A nil registry
// gets a fresh one.
func NewObserver(registry *prometheus.Registry) *Observer {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)
	return &Observer{
		registry: registry,
		meetingsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "committee_meetings_started_total",
			Help: "Meetings started",
		}),
		meetingsAdjourned: factory.NewCounter(prometheus.CounterOpts{
			Name: "committee_meetings_adjourned_total",
			Help: "Meetings adjourned",
		}),
		motionsMade: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "committee_motions_made_total",
			Help: "Motions made, by motion class",
		}, []string{"class"}),
		motionsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "committee_motions_resolved_total",
			Help: "Motions leaving the pending stack, by final status",
		}, []string{"status"}),
		ballotsCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "committee_ballots_cast_total",
			Help: "Ballots cast, including changed ballots",
		}),
		votesClosed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "committee_votes_closed_total",
			Help: "Votes closed, by outcome",
		}, []string{"outcome"}),
	}
}

func (o *Observer) MeetingStarted()   { o.meetingsStarted.Inc() }
func (o *Observer) MeetingAdjourned() { o.meetingsAdjourned.Inc() }
func (o *Observer) BallotCast()       { o.ballotsCast.Inc() }

func (o *Observer) MotionMade(class catalog.Class) {
	o.motionsMade.WithLabelValues(string(class)).Inc()
}

func (o *Observer) MotionResolved(status motion.Status) {
	o.motionsResolved.WithLabelValues(string(status)).Inc()
}

func (o *Observer) VoteClosed(outcome voting.Outcome) {
	o.votesClosed.WithLabelValues(string(outcome)).Inc()
}

// Registry returns the registry the counters live in.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}
