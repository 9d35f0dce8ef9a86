package hsm

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a declarative description of a chart and of one machine running it.
//
//	machine:
//	  name: canon
//	  prefix: "[Camera] "
//	  debug: [run, tran]
//	chart:
//	  id: camera
//	  maxDepth: 5
//	  initial: Off
//	  states:
//	    - name: Off
//	    - name: On
//	    - name: Shoot
//	      parent: On
type Config struct {
	Machine MachineConfig `json:"machine" yaml:"machine"`
	Chart   ChartConfig   `json:"chart" yaml:"chart"`
}

// MachineConfig holds per-instance settings.
type MachineConfig struct {
	Name         string   `json:"name" yaml:"name"`
	Prefix       string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Debug        []string `json:"debug,omitempty" yaml:"debug,omitempty"`
	MaxInitDepth int      `json:"maxInitDepth,omitempty" yaml:"maxInitDepth,omitempty"`
}

// ChartConfig describes the state hierarchy. Handlers are bound by name at
// Build time; a state without a handler name uses its own name.
type ChartConfig struct {
	ID       string        `json:"id" yaml:"id"`
	MaxDepth int           `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`
	Initial  string        `json:"initial" yaml:"initial"`
	States   []StateConfig `json:"states" yaml:"states"`
}

// StateConfig describes one state. An empty Parent places it under Root.
type StateConfig struct {
	Name    string `json:"name" yaml:"name"`
	Parent  string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML config document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the chart description:
// - non-empty ID and Initial
// - unique, non-empty state names
// - Initial and every Parent name an existing state
// - debug flag names are known
func (c *Config) Validate() error {
	if _, err := ParseDebugFlags(c.Machine.Debug); err != nil {
		return fmt.Errorf("machine %q: %w", c.Machine.Name, err)
	}
	return c.Chart.Validate()
}

func (c *ChartConfig) Validate() error {
	if c.ID == "" {
		return errors.New("chart ID is required")
	}
	if c.Initial == "" {
		return errors.New("initial state is required")
	}
	if len(c.States) == 0 {
		return errors.New("states list is required and cannot be empty")
	}
	names := make(map[string]bool, len(c.States))
	for i, s := range c.States {
		if s.Name == "" {
			return fmt.Errorf("state %d: name is required", i)
		}
		if names[s.Name] {
			return fmt.Errorf("state %q: %w", s.Name, ErrDuplicateState)
		}
		names[s.Name] = true
	}
	for _, s := range c.States {
		if s.Parent != "" && !names[s.Parent] {
			return fmt.Errorf("state %q: parent %q not found", s.Name, s.Parent)
		}
	}
	if !names[c.Initial] {
		return fmt.Errorf("initial state %q not found in states", c.Initial)
	}
	return nil
}

// Build creates a Chart, binding each state to handlers[HandlerName]. States
// may be listed in any order; a parent cycle is reported as an error.
func (c *ChartConfig) Build(handlers map[string]Handler) (*Chart, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var opts []ChartOption
	if c.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(c.MaxDepth))
	}
	chart := NewChart(opts...)

	pending := append([]StateConfig(nil), c.States...)
	for len(pending) > 0 {
		var next []StateConfig
		for _, sc := range pending {
			var parent *State
			if sc.Parent != "" {
				p, ok := chart.Lookup(sc.Parent)
				if !ok {
					next = append(next, sc)
					continue
				}
				parent = p
			}
			hname := sc.Handler
			if hname == "" {
				hname = sc.Name
			}
			h, ok := handlers[hname]
			if !ok {
				return nil, fmt.Errorf("state %q: handler %q not registered", sc.Name, hname)
			}
			if _, err := chart.NewState(sc.Name, h, parent); err != nil {
				return nil, fmt.Errorf("chart %q: %w", c.ID, err)
			}
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("chart %q: parent cycle involving state %q", c.ID, next[0].Name)
		}
		pending = next
	}
	return chart, nil
}

// Options converts the machine settings to Machine options.
func (c *MachineConfig) Options() ([]Option, error) {
	flags, err := ParseDebugFlags(c.Debug)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithDebug(flags)}
	if c.Prefix != "" {
		opts = append(opts, WithPrefix(c.Prefix))
	}
	if c.MaxInitDepth > 0 {
		opts = append(opts, WithMaxInitDepth(c.MaxInitDepth))
	}
	return opts, nil
}

// NewMachine builds the chart and starts a machine in its initial state.
// extra options are applied after the configured ones.
func (c *Config) NewMachine(handlers map[string]Handler, extra ...Option) (*Machine, error) {
	chart, err := c.Chart.Build(handlers)
	if err != nil {
		return nil, err
	}
	opts, err := c.Machine.Options()
	if err != nil {
		return nil, err
	}
	initial, _ := chart.Lookup(c.Chart.Initial)
	name := c.Machine.Name
	if name == "" {
		name = c.Chart.ID
	}
	return NewMachine(name, initial, append(opts, extra...)...)
}
