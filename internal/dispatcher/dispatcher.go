// Package dispatcher owns command_table (spec §4.6): the mapping from
// stable command names to handlers of signature (editor_state, count)
// → DispatchResult. It keeps the teacher's name-keyed Registry idiom
// but drops the async dispatch loop, priority-sorted multi-handler
// chains, hook manager, and panic-recovery metrics wiring the teacher
// built for its vim-operator model — this spec's handler set is a flat
// table with exactly one handler per name (see DESIGN.md).
package dispatcher

import (
	"github.com/dshills/keystorm/internal/editor"
)

// Dispatcher routes a command name to its handler and runs it against
// the shared editor.State.
type Dispatcher struct {
	commands map[string]editor.Command
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{commands: make(map[string]editor.Command)}
}

// Register adds a named handler to command_table. A later call with
// the same name replaces the handler, matching the teacher's
// Registry.Register replace-on-name-collision behavior.
func (d *Dispatcher) Register(name string, cmd editor.Command) {
	d.commands[name] = cmd
}

// Has reports whether name is a registered command.
func (d *Dispatcher) Has(name string) bool {
	_, ok := d.commands[name]
	return ok
}

// Names returns every registered command name, for execute-named-command
// completion/listing.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	return names
}

// Dispatch runs the named command with the given count. An unknown
// name yields a command-unknown error. Dispatch keeps no pending
// prefix or count of its own: resolver.Resolver clears both before it
// hands back the outcome that leads to a dispatch.
func (d *Dispatcher) Dispatch(name string, s *editor.State, count int) editor.DispatchResult {
	cmd, ok := d.commands[name]
	if !ok {
		return editor.Error(editor.ErrCommandUnknown)
	}
	return cmd(s, count)
}
