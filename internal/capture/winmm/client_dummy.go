//go:build !windows
// +build !windows

package winmm

import (
	"fmt"

	"github.com/midikit/mpe/sdk/contracts"
)

type DummyCaptureClient struct {
	logger contracts.Logger
}

func NewCaptureClient(options *contracts.Options) (contracts.CaptureClient, error) {
	options.Logger.Info("Using dummy winmm client for non-Windows system")
	return &DummyCaptureClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyCaptureClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy winmm client")
	return nil, fmt.Errorf("winmm is not available on this platform")
}

func (m *DummyCaptureClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy winmm client")
	return fmt.Errorf("winmm is not available on this platform")
}

func (m *DummyCaptureClient) StartCapture(events chan contracts.Event) {
	m.logger.Warn("StartCapture called on dummy winmm client")
}

func (m *DummyCaptureClient) Stop() error {
	m.logger.Warn("Stop called on dummy winmm client")
	return nil
}
