package contracts

// DeviceInfo contains information about a MIDI input device.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity the device belongs to.
}

// CaptureClient defines an interface for MIDI input capture. Implementations
// decode raw port traffic into Events; the tracker never sees raw bytes.
type CaptureClient interface {
	Stop() error                        // Stops capture and releases resources.
	ListDevices() ([]DeviceInfo, error) // Lists available MIDI input devices.
	SelectDevice(deviceID int) error    // Selects an input device by ID.
	StartCapture(events chan Event)     // Starts sending decoded events to the channel.
}
