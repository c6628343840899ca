package mpe

import (
	"github.com/midikit/mpe/internal/logger"
	"github.com/midikit/mpe/internal/tracker"
	"github.com/midikit/mpe/sdk/contracts"
)

// applyDefaultOptions sets default values for Options if not explicitly
// provided.
//
// opts ...contracts.Option: A variadic list of option functions that can
// modify Options.
//
// Returns:
//   - contracts.Options: The finalized options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.Options, error) {
	options := &contracts.Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.RingCapacity <= 0 {
		options.RingCapacity = tracker.DefaultRingCapacity
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
