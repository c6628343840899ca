// Package rtmidi provides the capture client for platforms without a native
// binding, backed by gomidi's rtmidi driver.
package rtmidi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver.

	"github.com/midikit/mpe/internal/decode"
	"github.com/midikit/mpe/sdk/contracts"
)

var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrNoDeviceSelected  = errors.New("no MIDI device selected")
)

// Client captures MIDI input through the registered rtmidi driver and
// decodes each message into a contracts.Event before delivery.
type Client struct {
	logger      contracts.Logger
	eventFilter *contracts.EventFilter

	mu       sync.Mutex
	inPort   drivers.In
	stopFunc func()
}

// NewCaptureClient creates an rtmidi-backed capture client.
func NewCaptureClient(options *contracts.Options) (contracts.CaptureClient, error) {
	options.Logger.Info("rtmidi capture client created")
	return &Client{
		logger:      options.Logger,
		eventFilter: options.EventFilter,
	}, nil
}

// ListDevices lists the available MIDI input ports.
func (m *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.DeviceInfo{
			Name:       in.String(),
			EntityName: in.String(),
		}
	}
	return devices, nil
}

// SelectDevice opens a MIDI input port by ID, closing any previous one.
func (m *Client) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins := gomidi.GetInPorts()
	if deviceID < 0 || deviceID >= len(ins) {
		m.logger.Error(ErrInvalidMIDIDevice.Error())
		return ErrInvalidMIDIDevice
	}

	m.closeConn()

	in := ins[deviceID]
	if err := in.Open(); err != nil {
		return fmt.Errorf("open %q: %w", in.String(), err)
	}
	m.inPort = in

	m.logger.Info("MIDI device connected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", in.String()))
	return nil
}

// StartCapture begins delivering decoded events to the given channel.
func (m *Client) StartCapture(events chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if events == nil {
		m.logger.Error("StartCapture called with nil event channel")
		return
	}
	if m.inPort == nil {
		m.logger.Error(ErrNoDeviceSelected.Error())
		return
	}
	if m.stopFunc != nil {
		m.logger.Warn("Capture already started")
		return
	}

	stop, err := gomidi.ListenTo(m.inPort, func(msg gomidi.Message, timestampms int32) {
		ev, ok := decode.Message(msg, uint64(time.Now().UTC().UnixNano()))
		if !ok {
			m.logger.Debug("unhandled MIDI message", m.logger.Field().String("msg", msg.String()))
			return
		}
		if !m.eventFilter.Allows(ev.Kind) {
			return
		}
		select {
		case events <- ev:
		default:
			m.logger.Warn("event buffer full; dropping MIDI event")
		}
	}, gomidi.HandleError(func(listenErr error) {
		m.logger.Warn("MIDI listener error", m.logger.Field().Error("error", listenErr))
	}))
	if err != nil {
		m.logger.Error("failed to start capture", m.logger.Field().Error("error", err))
		return
	}

	m.stopFunc = stop
	m.logger.Info("MIDI capture started")
}

// Stop halts capture and closes the port and driver resources.
func (m *Client) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeConn()
	gomidi.CloseDriver()
	m.logger.Info("MIDI capture stopped")
	return nil
}

func (m *Client) closeConn() {
	if m.stopFunc != nil {
		m.stopFunc()
		m.stopFunc = nil
	}
	if m.inPort != nil {
		_ = m.inPort.Close()
		m.inPort = nil
	}
}
