// Package view registers the scroll commands: scroll-up-command,
// scroll-down-command, scroll-up-line, scroll-down-line,
// recenter-top-bottom — thin wrappers over window.Window.Viewport's
// page, line-scroll and center helpers, kept
// directly from the teacher (renderer/viewport) with an Emacs-named
// command surface instead of the teacher's vim Ctrl-E/Ctrl-F set.
package view
