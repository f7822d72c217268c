// Package cursor registers the Emacs-named point-motion commands:
// forward-char/backward-char, next-line/previous-line,
// move-beginning-of-line/move-end-of-line, the word and paragraph
// motions, beginning-of-buffer/end-of-buffer, and the mark commands
// set-mark-command/exchange-point-and-mark/keyboard-quit.
package cursor
