package hsm_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comalice/hsm"
)

const (
	evPwr hsm.EventID = hsm.EventUser + iota
	evMode
	evOther
)

var testNames = hsm.EventNames(map[hsm.EventID]string{
	evPwr:   "PWR",
	evMode:  "MODE",
	evOther: "OTHER",
})

// node describes a test state: its INIT default child and, per event, the
// state to transition to ("" means handle without transitioning).
type node struct {
	name   string
	parent string
	init   string
	on     map[hsm.EventID]string
	// hook runs before the default behavior; returning true marks the event handled.
	hook func(m *hsm.Machine, evt hsm.EventID, param any) bool
}

// tracer records every handler call as "EVENT(State)".
type tracer struct {
	calls []string
}

func (tr *tracer) reset() { tr.calls = nil }

// lifecycle returns only the ENTRY and EXIT calls.
func (tr *tracer) lifecycle() []string {
	var out []string
	for _, c := range tr.calls {
		if strings.HasPrefix(c, "ENTRY(") || strings.HasPrefix(c, "EXIT(") {
			out = append(out, c)
		}
	}
	return out
}

func buildChart(t *testing.T, tr *tracer, opts []hsm.ChartOption, nodes ...node) (*hsm.Chart, map[string]*hsm.State) {
	t.Helper()
	chart := hsm.NewChart(opts...)
	states := make(map[string]*hsm.State, len(nodes))
	for _, n := range nodes {
		n := n
		h := hsm.HandlerFunc(func(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
			name := evt.String()
			if !evt.Reserved() {
				name = testNames(evt)
			}
			tr.calls = append(tr.calls, fmt.Sprintf("%s(%s)", name, n.name))
			if n.hook != nil && n.hook(m, evt, param) {
				return hsm.EventNull
			}
			switch evt {
			case hsm.EventInit:
				if n.init != "" {
					m.Transition(states[n.init], param, nil)
				}
				return hsm.EventNull
			case hsm.EventEntry, hsm.EventExit:
				return hsm.EventNull
			}
			if target, ok := n.on[evt]; ok {
				if target != "" {
					m.Transition(states[target], param, nil)
				}
				return hsm.EventNull
			}
			return evt
		})
		var parent *hsm.State
		if n.parent != "" {
			parent = states[n.parent]
			require.NotNil(t, parent, "parent %q of %q must be declared first", n.parent, n.name)
		}
		s, err := chart.NewState(n.name, h, parent)
		require.NoError(t, err)
		states[n.name] = s
	}
	return chart, states
}

// cameraNodes is the hierarchy Off, On{Shoot, Disp{Play, Menu}}.
func cameraNodes() []node {
	return []node{
		{name: "Off", on: map[hsm.EventID]string{evPwr: "On"}},
		{name: "On", init: "Shoot", on: map[hsm.EventID]string{evPwr: "Off"}},
		{name: "Shoot", parent: "On", on: map[hsm.EventID]string{evMode: "Play"}},
		{name: "Disp", parent: "On"},
		{name: "Play", parent: "Disp", on: map[hsm.EventID]string{evMode: "Menu"}},
		{name: "Menu", parent: "Disp", on: map[hsm.EventID]string{evMode: "Shoot"}},
	}
}

// counter is an hsm.Observer counting notifications.
type counter struct {
	dispatched  int
	dropped     int
	transitions []string
	rejected    []error
}

func (c *counter) EventDispatched(*hsm.Machine, hsm.EventID) { c.dispatched++ }
func (c *counter) EventDropped(*hsm.Machine, hsm.EventID)    { c.dropped++ }
func (c *counter) Transitioned(_ *hsm.Machine, from, to *hsm.State) {
	c.transitions = append(c.transitions, from.Name()+"->"+to.Name())
}
func (c *counter) TransitionRejected(_ *hsm.Machine, _ *hsm.State, err error) {
	c.rejected = append(c.rejected, err)
}
