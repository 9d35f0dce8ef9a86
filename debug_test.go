package hsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comalice/hsm"
)

func TestParseDebugFlags(t *testing.T) {
	tests := []struct {
		names   []string
		want    hsm.DebugFlags
		wantErr bool
	}{
		{nil, 0, false},
		{[]string{"none"}, 0, false},
		{[]string{"run"}, hsm.ShowRun, false},
		{[]string{"Run", " TRAN "}, hsm.ShowRun | hsm.ShowTran, false},
		{[]string{"intact", "all"}, hsm.ShowAll, false},
		{[]string{"verbose"}, 0, true},
	}
	for _, tt := range tests {
		got, err := hsm.ParseDebugFlags(tt.names)
		if tt.wantErr {
			assert.Error(t, err, tt.names)
			continue
		}
		require.NoError(t, err, tt.names)
		assert.Equal(t, tt.want, got, tt.names)
	}
}

func TestDebugFlagsString(t *testing.T) {
	assert.Equal(t, "none", hsm.DebugFlags(0).String())
	assert.Equal(t, "run|intact", (hsm.ShowRun | hsm.ShowIntAct).String())
	assert.Equal(t, "run|tran|intact", hsm.ShowAll.String())
}

func newTraced(t *testing.T, flags hsm.DebugFlags) (*hsm.Machine, map[string]*hsm.State, *observer.ObservedLogs) {
	t.Helper()
	_, states := buildChart(t, &tracer{}, nil, cameraNodes()...)
	core, logs := observer.New(zapcore.DebugLevel)
	m, err := hsm.NewMachine("cam", states["Off"],
		hsm.WithLogger(zap.New(core)),
		hsm.WithDebug(flags),
		hsm.WithPrefix("[Camera] "),
		hsm.WithEventNamer(testNames),
	)
	require.NoError(t, err)
	return m, states, logs
}

func TestDebugTraceCategories(t *testing.T) {
	m, _, logs := newTraced(t, hsm.ShowAll)
	assert.Equal(t, 2, logs.FilterMessage("[Camera] ENTRY").Len()+logs.FilterMessage("[Camera] INIT").Len())
	logs.TakeAll()

	require.NoError(t, m.Run(evPwr, nil))

	runs := logs.FilterMessage("[Camera] run").All()
	require.Len(t, runs, 1)
	fields := runs[0].ContextMap()
	assert.Equal(t, "Off", fields["state"])
	assert.Equal(t, "PWR", fields["event"])
	assert.Equal(t, int64(1), fields["nest"])
	assert.Equal(t, "cam", fields["machine"])

	trans := logs.FilterMessage("[Camera] transition").All()
	require.Len(t, trans, 2)
	assert.Equal(t, "On", trans[0].ContextMap()["to"])
	assert.Equal(t, "Shoot", trans[1].ContextMap()["to"])

	assert.Equal(t, 1, logs.FilterMessage("[Camera] EXIT").Len())
	assert.Equal(t, 2, logs.FilterMessage("[Camera] ENTRY").Len())
}

func TestDebugPassToParent(t *testing.T) {
	m, states, logs := newTraced(t, hsm.ShowRun)
	require.NoError(t, m.Transition(states["Play"], nil, nil))
	logs.TakeAll()

	require.NoError(t, m.Run(evPwr, nil))
	passes := logs.FilterMessage("[Camera] pass to parent").All()
	require.Len(t, passes, 2)
	assert.Equal(t, "Disp", passes[0].ContextMap()["state"])
	assert.Equal(t, "On", passes[1].ContextMap()["state"])
	assert.Zero(t, logs.FilterMessage("[Camera] transition").Len())
}

func TestSuppressDebugLastsOneRun(t *testing.T) {
	m, _, logs := newTraced(t, hsm.ShowRun|hsm.ShowTran)
	logs.TakeAll()

	m.SuppressDebug(hsm.ShowRun)
	require.NoError(t, m.Run(evPwr, nil))
	assert.Zero(t, logs.FilterMessage("[Camera] run").Len())
	assert.NotZero(t, logs.FilterMessage("[Camera] transition").Len())
	assert.Equal(t, hsm.ShowRun|hsm.ShowTran, m.Debug())

	logs.TakeAll()
	require.NoError(t, m.Run(evPwr, nil))
	assert.Equal(t, 1, logs.FilterMessage("[Camera] run").Len())
}

func TestSetDebugAndPrefix(t *testing.T) {
	m, _, logs := newTraced(t, 0)
	logs.TakeAll()

	require.NoError(t, m.Run(evPwr, nil))
	assert.Zero(t, logs.FilterLevelExact(zapcore.DebugLevel).Len())

	m.SetDebug(hsm.ShowTran)
	m.SetPrefix("cam: ")
	require.NoError(t, m.Run(evPwr, nil))
	assert.Equal(t, 1, logs.FilterMessage("cam: transition").Len())
}
