// Package editor registers self-insert-command, newline,
// delete-char/delete-backward-char, kill-line/kill-region,
// yank/yank-pop, and undo/redo.
package editor
