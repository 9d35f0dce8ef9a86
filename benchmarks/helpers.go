// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/hsm"
)

// EvTick moves every generated chart to its next state.
const EvTick = hsm.EventUser

// ticker returns a handler that transitions to *next on EvTick and to *init
// on INIT when set. Targets are resolved lazily so states can be wired after
// creation.
func ticker(next, init **hsm.State) hsm.Handler {
	return hsm.HandlerFunc(func(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
		switch evt {
		case hsm.EventInit:
			if init != nil && *init != nil {
				m.Transition(*init, param, nil)
			}
			return hsm.EventNull
		case hsm.EventEntry, hsm.EventExit:
			return hsm.EventNull
		case EvTick:
			if next != nil && *next != nil {
				m.Transition(*next, param, nil)
				return hsm.EventNull
			}
		}
		return evt
	})
}

// GenFlatChart creates n top-level states cycling via EvTick.
func GenFlatChart(n int) (*hsm.Chart, *hsm.State) {
	if n < 1 {
		n = 1
	}
	chart := hsm.NewChart()
	targets := make([]*hsm.State, n)
	states := make([]*hsm.State, n)
	for i := 0; i < n; i++ {
		states[i] = chart.MustState(fmt.Sprintf("s%d", i), ticker(&targets[i], nil), nil)
	}
	for i := range states {
		targets[i] = states[(i+1)%n]
	}
	chart.Seal()
	return chart, states[0]
}

// GenDeepChart creates a chain of composites depth levels deep. EvTick at the
// bottom leaf transitions to a leaf of the top-level sibling chain, so every
// tick exits and enters the whole hierarchy.
func GenDeepChart(depth int) (*hsm.Chart, *hsm.State) {
	if depth < 1 {
		depth = 1
	}
	chart := hsm.NewChart(hsm.WithMaxDepth(depth + 1))
	var leaves [2]*hsm.State
	for side := 0; side < 2; side++ {
		var parent *hsm.State
		for d := 0; d < depth; d++ {
			target := &leaves[1-side]
			if d < depth-1 {
				target = nil
			}
			parent = chart.MustState(fmt.Sprintf("c%d_%d", side, d), ticker(target, nil), parent)
		}
		leaves[side] = parent
	}
	chart.Seal()
	return chart, leaves[0]
}

// GenChartYAML renders a flat chart description with n states.
func GenChartYAML(n int) []byte {
	cfg := hsm.Config{
		Machine: hsm.MachineConfig{Name: fmt.Sprintf("flat_%d", n)},
		Chart: hsm.ChartConfig{
			ID:      fmt.Sprintf("flat_%d", n),
			Initial: "s0",
		},
	}
	for i := 0; i < n; i++ {
		cfg.Chart.States = append(cfg.Chart.States, hsm.StateConfig{
			Name:    fmt.Sprintf("s%d", i),
			Handler: "tick",
		})
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		panic(err)
	}
	return data
}
