package hsm

import "strings"

// IsInState reports whether s is the current state or one of its ancestors.
func (m *Machine) IsInState(s *State) bool {
	if s == nil {
		return false
	}
	return s.IsAncestorOf(m.current)
}

// State returns the current state.
func (m *Machine) State() *State { return m.current }

func (m *Machine) Name() string  { return m.name }
func (m *Machine) Chart() *Chart { return m.chart }
func (m *Machine) Data() any     { return m.data }

// InTransition is true while EXIT, ENTRY or a transition action is running.
func (m *Machine) InTransition() bool { return m.inTransition }

// EventName returns a diagnostic name for evt using the configured EventNamer.
func (m *Machine) EventName(evt EventID) string {
	if !evt.Reserved() && m.namer != nil {
		if name := m.namer(evt); name != "" {
			return name
		}
	}
	return evt.String()
}

// Path returns the active configuration from the top-level state down to the
// current state. Root is not included.
func (m *Machine) Path() []*State {
	path := make([]*State, m.current.depth)
	for s := m.current; s != Root && s != nil; s = s.parent {
		path[s.depth-1] = s
	}
	return path
}

// PathString renders Path as "On/Disp/Play".
func (m *Machine) PathString() string {
	var b strings.Builder
	for i, s := range m.Path() {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(s.name)
	}
	return b.String()
}
