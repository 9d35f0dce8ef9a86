package production

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/hsm"
)

// Metrics is an hsm.Observer exporting engine activity to Prometheus. One
// Metrics value can observe many machines; series are labelled by machine name.
type Metrics struct {
	dispatched  *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	depth       *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsm",
			Name:      "events_dispatched_total",
			Help:      "Events delivered to the machine with Run.",
		}, []string{"machine", "event"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsm",
			Name:      "events_dropped_total",
			Help:      "Events that reached the root state unhandled.",
		}, []string{"machine", "event"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsm",
			Name:      "transitions_total",
			Help:      "Committed state transitions.",
		}, []string{"machine", "from", "to"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsm",
			Name:      "transitions_rejected_total",
			Help:      "Transition calls refused by the engine.",
		}, []string{"machine", "reason"}),
		depth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hsm",
			Name:      "state_depth",
			Help:      "Depth of the current state below the root.",
		}, []string{"machine"}),
	}
	for _, c := range []prometheus.Collector{m.dispatched, m.dropped, m.transitions, m.rejected, m.depth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) EventDispatched(mc *hsm.Machine, evt hsm.EventID) {
	m.dispatched.WithLabelValues(mc.Name(), mc.EventName(evt)).Inc()
}

func (m *Metrics) EventDropped(mc *hsm.Machine, evt hsm.EventID) {
	m.dropped.WithLabelValues(mc.Name(), mc.EventName(evt)).Inc()
}

func (m *Metrics) Transitioned(mc *hsm.Machine, from, to *hsm.State) {
	m.transitions.WithLabelValues(mc.Name(), from.Name(), to.Name()).Inc()
	m.depth.WithLabelValues(mc.Name()).Set(float64(to.Depth()))
}

func (m *Metrics) TransitionRejected(mc *hsm.Machine, _ *hsm.State, err error) {
	m.rejected.WithLabelValues(mc.Name(), rejectReason(err)).Inc()
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, hsm.ErrTransitionInProgress):
		return "in_transition"
	case errors.Is(err, hsm.ErrInitRecursion):
		return "init_recursion"
	case errors.Is(err, hsm.ErrPathOverflow):
		return "path_overflow"
	case errors.Is(err, hsm.ErrNilState), errors.Is(err, hsm.ErrRootTarget), errors.Is(err, hsm.ErrForeignState):
		return "invalid_target"
	}
	return "other"
}
