package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SignupsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "jamqueue_signups_accepted_total", Help: "Total signups accepted into a queue"},
	)
	SignupsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "jamqueue_signups_rejected_total", Help: "Total signup requests rejected (deadline, capacity, duplicate)"},
	)
	SignupsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "jamqueue_signups_cancelled_total", Help: "Total signups cancelled by performers"},
	)
)

func Register() {
	prometheus.MustRegister(SignupsAccepted, SignupsRejected, SignupsCancelled)
}
