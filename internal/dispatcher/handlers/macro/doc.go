// Package macro registers begin-macro, end-macro, and execute-macro,
// thin wrappers over editor.MacroState. execute-macro replays the
// recorded events through Feed, a callback the top-level main loop
// wires to its own resolve-then-dispatch pipeline (this package
// cannot import dispatcher, which imports it).
package macro
