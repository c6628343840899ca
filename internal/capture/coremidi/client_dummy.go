//go:build !darwin
// +build !darwin

package coremidi

import (
	"fmt"

	"github.com/midikit/mpe/sdk/contracts"
)

type DummyCaptureClient struct {
	logger contracts.Logger
}

func NewCaptureClient(options *contracts.Options) (contracts.CaptureClient, error) {
	options.Logger.Info("Using dummy CoreMIDI client for non-macOS system")
	return &DummyCaptureClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyCaptureClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy CoreMIDI client")
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}

func (m *DummyCaptureClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy CoreMIDI client")
	return fmt.Errorf("CoreMIDI is not available on this platform")
}

func (m *DummyCaptureClient) StartCapture(events chan contracts.Event) {
	m.logger.Warn("StartCapture called on dummy CoreMIDI client")
}

func (m *DummyCaptureClient) Stop() error {
	m.logger.Warn("Stop called on dummy CoreMIDI client")
	return nil
}
