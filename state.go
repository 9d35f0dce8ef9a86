package hsm

// StateID indexes a state inside its Chart. The shared Root is always 0.
type StateID uint16

// Handler processes events for one state. It returns EventNull when the event
// was handled; any other value is passed on to the parent state.
//
// A handler may call Machine.Transition, except while it is handling
// EventEntry or EventExit.
type Handler interface {
	Handle(m *Machine, evt EventID, param any) EventID
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(m *Machine, evt EventID, param any) EventID

func (f HandlerFunc) Handle(m *Machine, evt EventID, param any) EventID {
	return f(m, evt, param)
}

// State is an immutable node of the state hierarchy. States are created
// through Chart.NewState and owned by their Chart.
type State struct {
	id      StateID
	name    string
	handler Handler
	parent  *State
	depth   int
	chart   *Chart
}

// Root is the catch-all ancestor of every state in every chart. Its handler
// drops whatever reaches it.
var Root = &State{
	name:    ":ROOT:",
	handler: HandlerFunc(rootHandler),
}

func rootHandler(m *Machine, evt EventID, param any) EventID {
	m.dropped(evt, param)
	return EventNull
}

func (s *State) ID() StateID      { return s.id }
func (s *State) Name() string     { return s.name }
func (s *State) Handler() Handler { return s.handler }

// Parent returns nil for Root.
func (s *State) Parent() *State { return s.parent }

// Depth is the distance from Root.
func (s *State) Depth() int { return s.depth }

// IsAncestorOf reports whether s is other or one of its ancestors.
func (s *State) IsAncestorOf(other *State) bool {
	for p := other; p != nil; p = p.parent {
		if p == s {
			return true
		}
	}
	return false
}

func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}
