package capture

import (
	"github.com/midikit/mpe/internal/logger"
	"github.com/midikit/mpe/sdk/contracts"
)

// NewCaptureClient creates a new MIDI capture client with the specified
// options. It applies default options and initializes the platform client.
//
// opts ...contracts.Option: A variadic list of option functions to customize
// the client configuration.
//
// Returns:
//   - contracts.CaptureClient: An instance of the capture client.
//   - error: An error, if any occurred during the creation of the client.
func NewCaptureClient(opts ...contracts.Option) (contracts.CaptureClient, error) {
	options := &contracts.Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.ClientName == "" {
		options.ClientName = "MPE State Tracker"
	}

	options.Logger.SetLevel(options.LogLevel)
	return NewClient(options)
}
