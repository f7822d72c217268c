package editor

// Command is the handler signature dispatcher.Dispatcher's command_table
// maps names to (spec §4.6): a command takes the shared state and the
// resolved universal-argument count (defaulting to 1 when the user gave
// none) and returns a DispatchResult.
type Command func(s *State, count int) DispatchResult
