// Package window registers the split/focus/close commands:
// split-window-below, split-window-right, other-window,
// delete-window, delete-other-windows, grow-window, shrink-window.
package window
