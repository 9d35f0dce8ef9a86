// Package hsm is a hierarchical state machine engine.
//
// States form a tree under the shared Root. Each state has a Handler; events
// given to Machine.Run start at the current state and bubble up through the
// ancestors until one handles them. Handlers change state by calling
// Machine.Transition, which exits up to the lowest common ancestor, enters down
// to the target and then sends EventInit so composite states can pick a
// default child.
//
// A Machine is not safe for concurrent use. Each event runs to completion,
// including nested transitions, before Run returns; callers with several event
// sources must serialize them into one goroutine.
package hsm

import (
	"fmt"

	"go.uber.org/zap"
)

// Action is an optional hook run between the EXIT and ENTRY phases of a transition.
type Action func(m *Machine, param any)

// Machine is one running instance of a Chart.
type Machine struct {
	name    string
	prefix  string
	chart   *Chart
	current *State

	debugCfg DebugFlags
	debug    DebugFlags

	inTransition bool
	initDepth    int
	maxInitDepth int
	nest         int

	// first transition failure seen by the running event / INIT handler
	runErr  error
	initErr error

	exitBuf  []*State
	entryBuf []*State

	logger   *zap.Logger
	namer    EventNamer
	observer Observer
	data     any
}

// NewMachine creates a machine in initial, sending it ENTRY and then INIT.
// The initial state's chart is sealed. An error from the INIT cascade is
// returned together with a nil Machine.
func NewMachine(name string, initial *State, opts ...Option) (*Machine, error) {
	if initial == nil || initial == Root || initial.chart == nil {
		return nil, fmt.Errorf("machine %q: %w", name, ErrInvalidInitial)
	}
	c := initial.chart
	c.Seal()

	m := &Machine{
		name:         name,
		chart:        c,
		maxInitDepth: c.maxDepth,
		exitBuf:      make([]*State, 0, c.maxDepth),
		entryBuf:     make([]*State, 0, c.maxDepth),
		logger:       zap.NewNop(),
		observer:     nopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("hsm").With(zap.String("machine", name))

	m.current = initial
	m.inTransition = true
	m.lifecycle(initial, EventEntry, nil)
	m.inTransition = false

	if err := m.init(initial, nil); err != nil {
		return nil, fmt.Errorf("machine %q init %q: %w", name, initial.name, err)
	}
	return m, nil
}

// Run delivers evt to the current state and, while unhandled, to each of its
// ancestors. It returns the first transition error raised while the event was
// processed; an event dropped at Root is not an error.
func (m *Machine) Run(evt EventID, param any) error {
	if evt == EventNull {
		return nil
	}
	if evt.Reserved() {
		return fmt.Errorf("run %s: %w", evt, ErrReservedEvent)
	}

	if m.nest == 0 {
		m.runErr = nil
	}
	m.nest++
	defer func() {
		m.nest--
		if m.nest == 0 {
			m.debug = m.debugCfg
		}
	}()

	state := m.current
	if m.tracing(ShowRun) {
		m.trace("run", zap.String("state", state.name), m.eventField(evt), zap.Any("param", param))
	}
	m.observer.EventDispatched(m, evt)

	for evt != EventNull && state != nil {
		evt = state.handler.Handle(m, evt, param)
		state = state.parent
		if evt != EventNull && state != nil && m.tracing(ShowRun) {
			m.trace("pass to parent", zap.String("state", state.name), m.eventField(evt), zap.Any("param", param))
		}
	}
	return m.runErr
}

// Transition moves the machine to next. EXIT is sent from the current state up
// to (not including) the lowest common ancestor, then action runs, then ENTRY
// is sent from below the ancestor down to next. After the new state is
// committed it receives INIT, whose handler may transition again to select a
// default child.
//
// Calling Transition from an ENTRY or EXIT handler, or from action, is
// rejected with ErrTransitionInProgress and leaves the machine unchanged.
func (m *Machine) Transition(next *State, param any, action Action) error {
	switch {
	case next == nil:
		return m.reject(next, ErrNilState)
	case next == Root:
		return m.reject(next, ErrRootTarget)
	case !m.chart.owns(next):
		return m.reject(next, ErrForeignState)
	case m.inTransition:
		return m.reject(next, ErrTransitionInProgress)
	case m.initDepth > m.maxInitDepth:
		return m.reject(next, ErrInitRecursion)
	}

	m.inTransition = true
	exit, entry, _, err := transitionPath(m.current, next, m.exitBuf, m.entryBuf)
	if err != nil {
		m.inTransition = false
		return m.reject(next, err)
	}

	from := m.current
	if m.tracing(ShowTran) {
		m.trace("transition", zap.String("from", from.name), zap.String("to", next.name))
	}
	for _, s := range exit {
		m.lifecycle(s, EventExit, param)
	}
	if action != nil {
		action(m, param)
	}
	for i := len(entry) - 1; i >= 0; i-- {
		m.lifecycle(entry[i], EventEntry, param)
	}

	m.current = next
	m.inTransition = false
	m.observer.Transitioned(m, from, next)

	if err := m.init(next, param); err != nil {
		m.record(err)
		return err
	}
	return nil
}

// lifecycle sends a pseudo-event to one state. The return value is ignored:
// lifecycle events never bubble.
func (m *Machine) lifecycle(s *State, evt EventID, param any) {
	if m.tracing(ShowIntAct) {
		m.trace(evt.String(), zap.String("state", s.name))
	}
	s.handler.Handle(m, evt, param)
}

// init sends INIT to s and returns the first transition failure raised by the
// cascade below it.
func (m *Machine) init(s *State, param any) error {
	saved := m.initErr
	m.initErr = nil
	m.initDepth++
	m.lifecycle(s, EventInit, param)
	m.initDepth--
	err := m.initErr
	m.initErr = saved
	return err
}

func (m *Machine) reject(next *State, err error) error {
	err = fmt.Errorf("transition %s -> %s: %w", m.current, next, err)
	m.logger.Error(m.prefix+"transition rejected",
		zap.String("from", m.current.String()),
		zap.String("to", next.String()),
		zap.Error(err),
	)
	m.observer.TransitionRejected(m, next, err)
	m.record(err)
	return err
}

func (m *Machine) record(err error) {
	if m.initErr == nil && m.initDepth > 0 {
		m.initErr = err
	}
	if m.runErr == nil && m.nest > 0 {
		m.runErr = err
	}
}

func (m *Machine) dropped(evt EventID, param any) {
	m.logger.Info(m.prefix+"event dropped",
		zap.String("state", m.current.name),
		m.eventField(evt),
		zap.Any("param", param),
	)
	m.observer.EventDropped(m, evt)
}
