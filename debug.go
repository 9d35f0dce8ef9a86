package hsm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DebugFlags selects which trace categories a Machine logs.
type DebugFlags uint8

const (
	ShowRun    DebugFlags = 1 << iota // event dispatch and parent hand-off
	ShowTran                          // transition source and target
	ShowIntAct                        // ENTRY, EXIT and INIT calls
	ShowAll    = ShowRun | ShowTran | ShowIntAct
)

var debugFlagNames = map[string]DebugFlags{
	"run":    ShowRun,
	"tran":   ShowTran,
	"intact": ShowIntAct,
	"all":    ShowAll,
	"none":   0,
}

// ParseDebugFlags turns names such as "run", "tran", "intact" or "all" into flags.
func ParseDebugFlags(names []string) (DebugFlags, error) {
	var flags DebugFlags
	for _, n := range names {
		f, ok := debugFlagNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown debug flag %q", n)
		}
		flags |= f
	}
	return flags, nil
}

func (f DebugFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range []string{"run", "tran", "intact"} {
		if f&debugFlagNames[n] != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// SetDebug replaces the configured trace categories.
func (m *Machine) SetDebug(flags DebugFlags) {
	m.debugCfg = flags
	m.debug = flags
}

// Debug returns the configured trace categories.
func (m *Machine) Debug() DebugFlags { return m.debugCfg }

// SuppressDebug silences the given categories until the current or next
// top-level Run returns. Useful for chatty periodic events.
func (m *Machine) SuppressDebug(flags DebugFlags) {
	m.debug = m.debugCfg &^ flags
}

// SetPrefix changes the trace message prefix.
func (m *Machine) SetPrefix(prefix string) { m.prefix = prefix }

func (m *Machine) tracing(flag DebugFlags) bool {
	return m.debug&flag != 0
}

func (m *Machine) trace(msg string, fields ...zap.Field) {
	m.logger.Debug(m.prefix+msg, append(fields, zap.Int("nest", m.nest))...)
}

func (m *Machine) eventField(evt EventID) zap.Field {
	return zap.String("event", m.EventName(evt))
}
