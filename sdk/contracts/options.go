package contracts

// EventFilter allows users to specify which event kinds to capture.
type EventFilter struct {
	Kinds []EventKind // Event kinds to pass through; empty means all.
}

// Allows reports whether the filter passes the given kind.
func (f *EventFilter) Allows(kind EventKind) bool {
	if f == nil || len(f.Kinds) == 0 {
		return true
	}
	for _, k := range f.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Options defines the configuration options shared by the tracker and the
// capture clients.
type Options struct {
	Logger       Logger       // Logger for events and errors.
	LogLevel     LogLevel     // Level of logging to use.
	RingCapacity int          // Per-channel released-note history capacity.
	EventFilter  *EventFilter // Optional filter for captured events.
	ClientName   string       // Name the capture client registers under.
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithRingCapacity sets the per-channel released-note history capacity.
func WithRingCapacity(capacity int) Option {
	return func(opts *Options) {
		opts.RingCapacity = capacity
	}
}

// WithEventFilter sets the capture event filter.
func WithEventFilter(filter EventFilter) Option {
	return func(opts *Options) {
		opts.EventFilter = &filter
	}
}

// WithClientName sets the name the capture client registers under.
func WithClientName(name string) Option {
	return func(opts *Options) {
		opts.ClientName = name
	}
}
