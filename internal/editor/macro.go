package editor

import (
	"fmt"

	"github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/input/macro"
)

// macroRegister is the single anonymous register this editor's
// macro_state uses. Spec §3 models macro_state as one process-wide
// {idle, recording, ready} slot, not the teacher's named a-z/0-9
// registers — recorder.go's register map still works perfectly for
// one reserved name, so rather than re-deriving the recording
// start/stop/append bookkeeping, this package reuses it under a single
// fixed key.
const macroRegister = 'm'

// MacroPhase is the current state of macro_state.
type MacroPhase uint8

const (
	MacroIdle MacroPhase = iota
	MacroRecording
	MacroReady
)

// MacroState owns the recorder/player pair and exposes spec §4.6's
// begin-macro/end-macro/execute-macro operations.
type MacroState struct {
	recorder *macro.Recorder
	player   *macro.Player
}

// NewMacroState creates an empty, idle macro state.
func NewMacroState() *MacroState {
	rec := macro.NewRecorder()
	return &MacroState{
		recorder: rec,
		player:   macro.NewPlayer(rec),
	}
}

// Phase reports whether no macro is being recorded, one is actively
// recording, or a completed recording is ready to play.
func (m *MacroState) Phase() MacroPhase {
	if m.recorder.IsRecording() {
		return MacroRecording
	}
	if m.recorder.HasMacro(macroRegister) {
		return MacroReady
	}
	return MacroIdle
}

// Begin starts recording. Returns an error if already recording.
func (m *MacroState) Begin() error {
	return m.recorder.StartRecording(macroRegister)
}

// Record tees one resolved input event into the in-progress recording.
// A no-op when not recording, matching spec §4.6 ("subsequent events
// are appended to the list as they are resolved").
func (m *MacroState) Record(evt key.Event) {
	m.recorder.Record(evt)
}

// End stops recording, transitioning macro_state to ready, or back to
// idle when no event was recorded.
func (m *MacroState) End() []key.Event {
	return m.recorder.StopRecording()
}

// Execute replays the recorded macro count times, feeding each event
// through feed. feed is expected to be the same resolution pipeline
// used for live input (spec §4.6: "replays the recorded events N times
// through the same resolution pipeline"). If feed returns an error the
// remaining iterations are aborted and that error is returned.
func (m *MacroState) Execute(count int, feed func(key.Event) error) error {
	if !m.recorder.HasMacro(macroRegister) {
		return fmt.Errorf("macro: no recording to execute")
	}
	if count < 1 {
		count = 1
	}
	events := m.recorder.Get(macroRegister)
	for i := 0; i < count; i++ {
		for _, evt := range events {
			if err := feed(evt); err != nil {
				return fmt.Errorf("macro playback aborted after %d/%d repetitions: %w", i, count, err)
			}
		}
	}
	m.recorder.SetLastPlayed(macroRegister)
	return nil
}
