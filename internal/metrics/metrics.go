package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sprayweb_backend_requests_total",
		Help: "Total number of requests sent to the backend API.",
	},
		[]string{"method", "code"},
	)

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sprayweb_logins_total",
		Help: "Total number of login attempts by outcome.",
	},
		[]string{"outcome"},
	)

	AssignmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sprayweb_sprayer_assignments_total",
		Help: "Total number of confirmed sprayer assignments by outcome.",
	},
		[]string{"outcome"},
	)

	OrderCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sprayweb_order_commands_total",
		Help: "Total number of order commands issued from the detail dialog.",
	},
		[]string{"command", "outcome"},
	)

	SessionsSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sprayweb_sessions_swept_total",
		Help: "Total number of expired sessions removed by the sweeper.",
	})
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}

	return OutcomeSuccess
}
