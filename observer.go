package hsm

// Observer is notified of engine activity. Callbacks run synchronously on the
// dispatching goroutine and must not call back into the Machine.
type Observer interface {
	// EventDispatched is called once per Run before the first handler.
	EventDispatched(m *Machine, evt EventID)
	// EventDropped is called when an event reaches Root unhandled.
	EventDropped(m *Machine, evt EventID)
	// Transitioned is called after a transition commits, before INIT.
	Transitioned(m *Machine, from, to *State)
	// TransitionRejected is called when Transition refuses to run.
	TransitionRejected(m *Machine, to *State, err error)
}

type nopObserver struct{}

func (nopObserver) EventDispatched(*Machine, EventID)          {}
func (nopObserver) EventDropped(*Machine, EventID)             {}
func (nopObserver) Transitioned(*Machine, *State, *State)      {}
func (nopObserver) TransitionRejected(*Machine, *State, error) {}

// Observers fans notifications out to several observers in order.
type Observers []Observer

func (obs Observers) EventDispatched(m *Machine, evt EventID) {
	for _, o := range obs {
		o.EventDispatched(m, evt)
	}
}

func (obs Observers) EventDropped(m *Machine, evt EventID) {
	for _, o := range obs {
		o.EventDropped(m, evt)
	}
}

func (obs Observers) Transitioned(m *Machine, from, to *State) {
	for _, o := range obs {
		o.Transitioned(m, from, to)
	}
}

func (obs Observers) TransitionRejected(m *Machine, to *State, err error) {
	for _, o := range obs {
		o.TransitionRejected(m, to, err)
	}
}
