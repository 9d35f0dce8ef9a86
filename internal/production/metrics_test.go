package production

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/hsm"
	"github.com/comalice/hsm/internal/camera"
)

func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

func TestMetricsObserveCamera(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	chart := camera.NewChart()
	cam, err := camera.New("canon", chart, &camera.Recorder{}, hsm.WithObserver(metrics))
	require.NoError(t, err)

	require.NoError(t, cam.Run(camera.EvPwr, nil))
	require.NoError(t, cam.Run(camera.EvMode, nil))
	require.NoError(t, cam.Run(camera.EvRelease, 1))
	require.NoError(t, cam.Run(camera.EvRelease, 1))

	assert.Equal(t, 1.0, metricValue(t, metrics.dispatched.WithLabelValues("canon", "PWR_CMD")))
	assert.Equal(t, 2.0, metricValue(t, metrics.dispatched.WithLabelValues("canon", "RELEASE")))
	assert.Equal(t, 2.0, metricValue(t, metrics.dropped.WithLabelValues("canon", "RELEASE")))
	assert.Equal(t, 1.0, metricValue(t, metrics.transitions.WithLabelValues("canon", "Off", "On")))
	assert.Equal(t, 1.0, metricValue(t, metrics.transitions.WithLabelValues("canon", "On", "Shoot")))
	assert.Equal(t, 1.0, metricValue(t, metrics.transitions.WithLabelValues("canon", "Shoot", "Play")))
	assert.Equal(t, 3.0, metricValue(t, metrics.depth.WithLabelValues("canon")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "hsm_events_dispatched_total")
	assert.Contains(t, names, "hsm_transitions_total")
}

func TestMetricsRejected(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	chart := camera.NewChart()
	cam, err := camera.New("canon", chart, &camera.Recorder{}, hsm.WithObserver(metrics))
	require.NoError(t, err)

	assert.Error(t, cam.Machine().Transition(hsm.Root, nil, nil))
	assert.Error(t, cam.Machine().Transition(nil, nil, nil))
	assert.Equal(t, 2.0, metricValue(t, metrics.rejected.WithLabelValues("canon", "invalid_target")))
}

func TestNewMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestRejectReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrap: %w", hsm.ErrTransitionInProgress), "in_transition"},
		{hsm.ErrInitRecursion, "init_recursion"},
		{hsm.ErrPathOverflow, "path_overflow"},
		{hsm.ErrForeignState, "invalid_target"},
		{hsm.ErrRootTarget, "invalid_target"},
		{hsm.ErrChartSealed, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rejectReason(tt.err), tt.err.Error())
	}
}
