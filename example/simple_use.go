package main

import (
	"fmt"

	"github.com/midikit/mpe/internal/logger"
	"github.com/midikit/mpe/sdk/capture"
	"github.com/midikit/mpe/sdk/contracts"
	"github.com/midikit/mpe/sdk/mpe"
)

func main() {
	log := logger.NewZapLogger()

	tracker, err := mpe.NewTracker(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithRingCapacity(8),
	)
	if err != nil {
		log.Error("Failed to create MPE tracker", log.Field().Error("error", err))
		return
	}

	// Claim the Lower Zone: manager channel 1, members 2-8, default 48
	// semitone bend range.
	zone, err := mpe.ClaimLowerZone(tracker, 7, 0)
	if err != nil {
		log.Error("Failed to claim Lower Zone", log.Field().Error("error", err))
		return
	}
	fmt.Println("Lower Zone claimed, member channels:", zone.Members())

	client, err := capture.NewCaptureClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		log.Error("Failed to initialize capture client", log.Field().Error("error", err))
		return
	}

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = client.SelectDevice(0); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}

	events := make(chan contracts.Event, 100)
	go func() {
		for ev := range events {
			if err := tracker.Apply(ev); err != nil {
				log.Warn("Event rejected", log.Field().Error("error", err))
				continue
			}
			for _, note := range tracker.ActiveNotes() {
				state, _ := tracker.ChannelState(note.Channel)
				log.Info("Active note",
					log.Field().Uint8("channel", note.Channel),
					log.Field().Uint8("note", note.Number),
					log.Field().Uint8("velocity", note.VelocityOn),
					log.Field().Int("pitchBend", int(state.PitchBend)),
					log.Field().Uint8("pressure", state.Pressure),
					log.Field().Uint8("timbre", state.Timbre),
				)
			}
		}
	}()

	client.StartCapture(events)
	defer client.Stop()

	fmt.Println("Tracking MPE state... Press Ctrl+C to exit.")
	select {} // Run indefinitely
}
