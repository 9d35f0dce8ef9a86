// Package camera is a digital camera controller built on the hsm engine:
//
//	Off
//	On
//	├── Shoot
//	└── Disp
//	    ├── Play
//	    └── Menu
//
// PWR toggles Off and On (On starts in Shoot), MODE cycles
// Shoot -> Play -> Menu -> Shoot, RELEASE takes a picture while shooting and
// LOWBATT beeps anywhere under On.
package camera

import (
	"fmt"

	"github.com/comalice/hsm"
)

const (
	EvPwr hsm.EventID = hsm.EventUser + iota
	EvRelease
	EvMode
	EvLowBatt
)

// EventNames maps camera events for diagnostics.
var EventNames = hsm.EventNames(map[hsm.EventID]string{
	EvPwr:     "PWR_CMD",
	EvRelease: "RELEASE",
	EvMode:    "MODE_CMD",
	EvLowBatt: "LOWBATT_EVT",
})

// Chart is the camera state table. One Chart serves any number of cameras.
type Chart struct {
	*hsm.Chart
	Off, On, Shoot, Disp, Play, Menu *hsm.State
}

// NewChart builds the camera chart in code.
func NewChart() *Chart {
	c := &Chart{Chart: hsm.NewChart()}
	h := c.handlers()
	c.Off = c.MustState("Off", h["Off"], nil)
	c.On = c.MustState("On", h["On"], nil)
	c.Shoot = c.MustState("Shoot", h["Shoot"], c.On)
	c.Disp = c.MustState("Disp", h["Disp"], c.On)
	c.Play = c.MustState("Play", h["Play"], c.Disp)
	c.Menu = c.MustState("Menu", h["Menu"], c.Disp)
	c.Seal()
	return c
}

// ChartFromConfig builds the camera chart from a declarative description.
// Every camera state must be present; handler names are the state names
// above.
func ChartFromConfig(cfg *hsm.ChartConfig) (*Chart, error) {
	c := &Chart{}
	built, err := cfg.Build(c.handlers())
	if err != nil {
		return nil, err
	}
	c.Chart = built
	for name, dst := range map[string]**hsm.State{
		"Off": &c.Off, "On": &c.On, "Shoot": &c.Shoot,
		"Disp": &c.Disp, "Play": &c.Play, "Menu": &c.Menu,
	} {
		s, ok := built.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("camera chart %q: missing state %q", cfg.ID, name)
		}
		*dst = s
	}
	c.Seal()
	return c, nil
}

func (c *Chart) handlers() map[string]hsm.Handler {
	return map[string]hsm.Handler{
		"Off":   hsm.HandlerFunc(c.off),
		"On":    hsm.HandlerFunc(c.on),
		"Shoot": hsm.HandlerFunc(c.shoot),
		"Disp":  hsm.HandlerFunc(c.disp),
		"Play":  hsm.HandlerFunc(c.play),
		"Menu":  hsm.HandlerFunc(c.menu),
	}
}
