package capture

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/midikit/mpe/internal/capture/coremidi"
	"github.com/midikit/mpe/internal/capture/rtmidi"
	"github.com/midikit/mpe/internal/capture/winmm"
	"github.com/midikit/mpe/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by
// any capture client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding capture client
// initializers.
var clientInitializers = map[string]func(*contracts.Options) (contracts.CaptureClient, error){
	"darwin":  coremidi.NewCaptureClient, // macOS (Darwin) CoreMIDI client.
	"windows": winmm.NewCaptureClient,    // Windows winmm client.
	"linux":   rtmidi.NewCaptureClient,   // Linux rtmidi client.
}

// NewClient initializes a capture client based on the current operating
// system, returning ErrUnsupportedOS if none applies.
//
// opts *contracts.Options: Configuration options for the capture client.
//
// Returns:
//   - contracts.CaptureClient: An instance of the capture client.
//   - error: An error if the operating system is unsupported or if
//     initialization fails.
func NewClient(opts *contracts.Options) (contracts.CaptureClient, error) {
	if initializer, exists := clientInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
