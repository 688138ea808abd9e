package metrics

import (
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/prometheus/client_golang/prometheus"
)

// CircuitBreakerMetrics tracks breaker state for outbound dependencies (redis, discord).
type CircuitBreakerMetrics struct {
	State        *prometheus.GaugeVec
	StateChanges *prometheus.CounterVec
}

func NewCircuitBreakerMetrics(reg prometheus.Registerer) *CircuitBreakerMetrics {
	m := &CircuitBreakerMetrics{
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "circuit_breaker",
			Name:      "state",
			Help:      "Current circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"component"}),
		StateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "circuit_breaker",
			Name:      "state_changes_total",
			Help:      "Total number of circuit breaker state transitions.",
		}, []string{"component", "to_state"}),
	}

	reg.MustRegister(m.State, m.StateChanges)
	return m
}

// Observe records a transition of the named component's breaker. Safe on a nil receiver.
func (m *CircuitBreakerMetrics) Observe(component string, to circuitbreaker.State) {
	if m == nil {
		return
	}
	m.StateChanges.WithLabelValues(component, to.String()).Inc()
	m.State.WithLabelValues(component).Set(stateToFloat(to))
}

func stateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}
