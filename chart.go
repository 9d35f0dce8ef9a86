package hsm

import (
	"fmt"
	"math"
)

// DefaultMaxDepth bounds the hierarchy when no WithMaxDepth option is given.
// A state may sit at most DefaultMaxDepth-1 levels below Root.
const DefaultMaxDepth = 5

// Chart is the state table of one machine type. It owns the state descriptors,
// indexed by StateID with Root at index 0, and fixes the hierarchy bound used
// to size the transition scratch buffers. Any number of machines may share a
// Chart once it is sealed.
type Chart struct {
	states   []*State
	byName   map[string]*State
	maxDepth int
	sealed   bool
}

// ChartOption configures a Chart.
type ChartOption func(*Chart)

// WithMaxDepth sets the hierarchy bound. Values below 2 are ignored.
func WithMaxDepth(n int) ChartOption {
	return func(c *Chart) {
		if n >= 2 {
			c.maxDepth = n
		}
	}
}

// NewChart creates an empty chart containing only Root.
func NewChart(opts ...ChartOption) *Chart {
	c := &Chart{
		states:   []*State{Root},
		byName:   make(map[string]*State),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewState registers a state under parent, or directly under Root when parent
// is nil. Depth is derived from the parent and must stay below MaxDepth.
func (c *Chart) NewState(name string, h Handler, parent *State) (*State, error) {
	if c.sealed {
		return nil, fmt.Errorf("add state %q: %w", name, ErrChartSealed)
	}
	if h == nil {
		return nil, fmt.Errorf("state %q: %w", name, ErrNilHandler)
	}
	if _, exists := c.byName[name]; exists || name == Root.name {
		return nil, fmt.Errorf("state %q: %w", name, ErrDuplicateState)
	}
	if parent == nil {
		parent = Root
	}
	if parent != Root && parent.chart != c {
		return nil, fmt.Errorf("state %q parent %q: %w", name, parent.name, ErrForeignParent)
	}
	depth := parent.depth + 1
	if depth >= c.maxDepth {
		return nil, fmt.Errorf("state %q at depth %d (max %d): %w", name, depth, c.maxDepth, ErrMaxDepth)
	}
	if len(c.states) > math.MaxUint16 {
		return nil, fmt.Errorf("state %q: chart is full", name)
	}

	s := &State{
		id:      StateID(len(c.states)),
		name:    name,
		handler: h,
		parent:  parent,
		depth:   depth,
		chart:   c,
	}
	c.states = append(c.states, s)
	c.byName[name] = s
	return s, nil
}

// MustState is NewState for static tables; it panics on configuration errors.
func (c *Chart) MustState(name string, h Handler, parent *State) *State {
	s, err := c.NewState(name, h, parent)
	if err != nil {
		panic(err)
	}
	return s
}

// Seal freezes the chart. NewMachine seals the chart of its initial state.
func (c *Chart) Seal() { c.sealed = true }

func (c *Chart) Sealed() bool  { return c.sealed }
func (c *Chart) MaxDepth() int { return c.maxDepth }

// State returns the state with the given id, or nil.
func (c *Chart) State(id StateID) *State {
	if int(id) >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Lookup finds a state by name.
func (c *Chart) Lookup(name string) (*State, bool) {
	if name == Root.name {
		return Root, true
	}
	s, ok := c.byName[name]
	return s, ok
}

// States returns all states in registration order, Root first.
func (c *Chart) States() []*State {
	return append([]*State(nil), c.states...)
}

// Children returns the direct children of s in registration order.
func (c *Chart) Children(s *State) []*State {
	var out []*State
	for _, st := range c.states[1:] {
		if st.parent == s {
			out = append(out, st)
		}
	}
	return out
}

func (c *Chart) owns(s *State) bool {
	return s == Root || s.chart == c
}
