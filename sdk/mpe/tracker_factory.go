package mpe

import (
	"github.com/midikit/mpe/internal/tracker"
	"github.com/midikit/mpe/sdk/contracts"
)

// NewTracker creates a new MPE state tracker with the specified options.
// It applies default options and initializes all 16 channels conventional
// with both zones inactive.
//
// opts ...contracts.Option: A variadic list of option functions to customize
// the tracker configuration.
//
// Returns:
//   - contracts.Tracker: An instance of the MPE state tracker.
//   - error: An error, if any occurred during creation.
func NewTracker(opts ...contracts.Option) (contracts.Tracker, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return tracker.New(&options), nil
}
