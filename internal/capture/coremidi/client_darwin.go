//go:build darwin
// +build darwin

package coremidi

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/midikit/mpe/internal/decode"
	"github.com/midikit/mpe/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a
// MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Client captures MIDI input through CoreMIDI on macOS and decodes each
// packet into a contracts.Event before delivery. It manages device
// connections and safe concurrent shutdown.
type Client struct {
	logger       contracts.Logger
	eventChannel atomic.Value // Holds the chan contracts.Event for thread-safe swap.
	client       coremidi.Client
	inputPort    coremidi.InputPort
	portConn     internalPortConnection
	eventFilter  *contracts.EventFilter
	mu           sync.Mutex
	capturing    bool
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

// NewCaptureClient initializes a CoreMIDI-backed capture client.
func NewCaptureClient(options *contracts.Options) (contracts.CaptureClient, error) {
	client, err := coremidi.NewClient(options.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("CoreMIDI capture client created")

	return &Client{
		logger:      options.Logger,
		client:      client,
		eventFilter: options.EventFilter,
	}, nil
}

// ListDevices retrieves and returns available MIDI input devices.
func (m *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI input device by ID and connects to it,
// disconnecting any previous device first.
func (m *Client) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error())
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handlePacket)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device connected")
	return nil
}

// handlePacket decodes an incoming packet and delivers the event if a
// capture channel is active and the filter passes it.
func (m *Client) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	eventChannel, _ := m.eventChannel.Load().(chan contracts.Event)
	if eventChannel == nil {
		return
	}

	ev, ok := decode.Message(packet.Data, uint64(time.Now().UTC().UnixNano()))
	if !ok {
		m.logger.Debug("unhandled MIDI packet")
		return
	}
	if !m.eventFilter.Allows(ev.Kind) {
		return
	}

	select {
	case eventChannel <- ev:
	default:
		m.logger.Warn("event buffer full; dropping MIDI event")
	}
}

// StartCapture begins delivering decoded events to the given channel,
// stopping any capture already in progress.
func (m *Client) StartCapture(events chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if events == nil {
		m.logger.Error("StartCapture called with nil event channel")
		return
	}

	if m.capturing {
		m.logger.Warn("capture already started; stopping existing capture")
		if err := m.Stop(); err != nil {
			m.logger.Error("failed to stop existing capture", m.logger.Field().Error("error", err))
		}
	}

	m.logger.Info("starting MIDI event capture")
	m.eventChannel.Store(events)
	m.capturing = true
}

// Stop halts capture, disconnects the device, and waits for in-flight packet
// handling to finish. Executes only once.
func (m *Client) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.capturing {
			m.capturing = false

			if m.portConn != nil {
				m.portConn.Disconnect()
				m.portConn = nil
			}

			// Swap in a dummy channel so late packets have nowhere to write.
			dummyChannel := make(chan contracts.Event)
			m.eventChannel.Store(dummyChannel)

			m.logger.Info("MIDI capture stopped")
			m.wg.Wait()
		}
	})
	return nil
}
