package camera

import (
	"fmt"
	"io"

	"github.com/comalice/hsm"
)

// Actuator performs the camera's hardware actions.
type Actuator interface {
	Do(action string)
}

// Recorder is an Actuator that remembers every action in order.
type Recorder struct {
	Actions []string
}

func (r *Recorder) Do(action string) { r.Actions = append(r.Actions, action) }

// Reset forgets the recorded actions.
func (r *Recorder) Reset() { r.Actions = r.Actions[:0] }

// Printer is an Actuator that writes each action as a line.
type Printer struct {
	W io.Writer
}

func (p Printer) Do(action string) { fmt.Fprintf(p.W, "\t%s\n", action) }

// Camera owns one machine running the camera chart.
type Camera struct {
	chart *Chart
	act   Actuator
	m     *hsm.Machine
}

// New starts a camera in Off.
func New(name string, chart *Chart, act Actuator, opts ...hsm.Option) (*Camera, error) {
	c := &Camera{chart: chart, act: act}
	opts = append([]hsm.Option{hsm.WithEventNamer(EventNames), hsm.WithData(c)}, opts...)
	m, err := hsm.NewMachine(name, chart.Off, opts...)
	if err != nil {
		return nil, err
	}
	c.m = m
	return c, nil
}

// Run delivers a camera event. For EvRelease, param is the number of free
// image slots.
func (c *Camera) Run(evt hsm.EventID, param any) error {
	return c.m.Run(evt, param)
}

func (c *Camera) Machine() *hsm.Machine { return c.m }

func owner(m *hsm.Machine) *Camera { return m.Data().(*Camera) }

func (c *Chart) off(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
	cam := owner(m)
	switch evt {
	case hsm.EventEntry:
		cam.act.Do("EnterLowPower")
		return hsm.EventNull
	case hsm.EventExit:
		cam.act.Do("ExitLowPower")
		return hsm.EventNull
	case EvPwr:
		m.Transition(c.On, nil, nil)
		return hsm.EventNull
	}
	return evt
}

func (c *Chart) on(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
	cam := owner(m)
	switch evt {
	case hsm.EventEntry:
		cam.act.Do("OpenLens")
		return hsm.EventNull
	case hsm.EventExit:
		cam.act.Do("CloseLens")
		return hsm.EventNull
	case hsm.EventInit:
		m.Transition(c.Shoot, nil, nil)
		return hsm.EventNull
	case EvPwr:
		m.Transition(c.Off, nil, nil)
		return hsm.EventNull
	case EvLowBatt:
		cam.act.Do("BeepLowBattWarning")
		return hsm.EventNull
	}
	return evt
}

func (c *Chart) shoot(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
	cam := owner(m)
	switch evt {
	case hsm.EventEntry:
		cam.act.Do("EnableSensor")
		cam.act.Do("OpenViewFinder")
		return hsm.EventNull
	case hsm.EventExit:
		cam.act.Do("DisableSensor")
		cam.act.Do("CloseViewFinder")
		return hsm.EventNull
	case EvRelease:
		if free, _ := param.(int); free > 0 {
			cam.act.Do("TakePicture")
			cam.act.Do("SaveImage")
		} else {
			cam.act.Do("MemoryFull")
		}
		return hsm.EventNull
	case EvMode:
		m.Transition(c.Play, nil, nil)
		return hsm.EventNull
	}
	return evt
}

func (c *Chart) disp(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
	cam := owner(m)
	switch evt {
	case hsm.EventEntry:
		cam.act.Do("TurnOnLCD")
		return hsm.EventNull
	case hsm.EventExit:
		cam.act.Do("TurnOffLCD")
		return hsm.EventNull
	}
	return evt
}

func (c *Chart) play(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
	cam := owner(m)
	switch evt {
	case hsm.EventEntry:
		cam.act.Do("DisplayPicture")
		return hsm.EventNull
	case EvMode:
		m.Transition(c.Menu, nil, nil)
		return hsm.EventNull
	}
	return evt
}

func (c *Chart) menu(m *hsm.Machine, evt hsm.EventID, param any) hsm.EventID {
	cam := owner(m)
	switch evt {
	case hsm.EventEntry:
		cam.act.Do("DisplayMenu")
		return hsm.EventNull
	case EvMode:
		m.Transition(c.Shoot, nil, nil)
		return hsm.EventNull
	}
	return evt
}
