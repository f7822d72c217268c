// Package file registers find-file and save-buffer. Both take a
// caller-supplied path via a package-level variable, following the
// same convention as editor.SelfInsertText for string-argument
// commands dispatched through the fixed (state, count) signature.
package file
