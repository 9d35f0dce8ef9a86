package hsm

import "go.uber.org/zap"

// Option applies configuration to a Machine via the functional options pattern.
type Option func(*Machine)

// WithLogger sets the diagnostic sink. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDebug enables the given trace categories.
func WithDebug(flags DebugFlags) Option {
	return func(m *Machine) {
		m.debugCfg = flags
		m.debug = flags
	}
}

// WithPrefix prepends prefix to every trace message, e.g. "[Camera] ".
func WithPrefix(prefix string) Option {
	return func(m *Machine) {
		m.prefix = prefix
	}
}

// WithEventNamer sets the event to string hook used in diagnostics.
func WithEventNamer(n EventNamer) Option {
	return func(m *Machine) {
		m.namer = n
	}
}

// WithMaxInitDepth bounds how many INIT handlers may be nested while each
// transitions again. It defaults to the chart's max depth, which every legal
// INIT descent fits in.
func WithMaxInitDepth(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.maxInitDepth = n
		}
	}
}

// WithObserver attaches an Observer (metrics, tracing, tests).
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observer = o
		}
	}
}

// WithData attaches the object that owns the machine, e.g. the device whose
// behavior the chart implements. Handlers retrieve it with Machine.Data.
func WithData(v any) Option {
	return func(m *Machine) {
		m.data = v
	}
}
