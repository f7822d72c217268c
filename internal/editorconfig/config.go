// Package editorconfig holds the build-time configuration every
// keystorm session starts from. Per spec.md's Non-goal ("no persistent
// configuration files; configured at build time"), there is no
// file-backed loader, watcher, or live-reload layer here — unlike the
// teacher's internal/config/{loader,watcher,notify,schema}, which read
// from disk and react to changes. Config is built once, by Default(),
// and frozen for the life of the process; the only way to change a
// value is to pass an Option to Default() before anything else is
// constructed, in the style of the teacher's buffer.Option.
package editorconfig

import "time"

// Config is the immutable set of tunables the engine's components
// read at construction time: buffer tab width, window scroll margins,
// kill-ring capacity, the keybinding resolver's prefix timeout, the
// undo coalescer's group timeout, and the name of the keymap set to
// load by default.
type Config struct {
	TabWidth int

	// ScrollMargin is the number of lines kept visible above/below the
	// cursor before the viewport scrolls (spec §4.3's "scrolloff").
	ScrollMargin int

	KillRingCapacity int

	// PrefixTimeout bounds how long a partial keybinding prefix may sit
	// idle before the resolver flushes it (spec §4.5).
	PrefixTimeout time.Duration

	// UndoGroupTimeout bounds how long a run of coalesced edits may
	// stay open before the next edit starts a fresh undo group.
	UndoGroupTimeout time.Duration

	// DefaultKeymap names the keymap.Keymap installed before any
	// user-supplied keymap is layered on top. "default-global" selects
	// keymap.DefaultGlobalKeymap.
	DefaultKeymap string
}

// Defaults, named so every magic number used to build them has one
// place to live.
const (
	DefaultTabWidth         = 8
	DefaultScrollMargin     = 2
	DefaultKillRingCapacity = 60
	DefaultPrefixTimeout    = 500 * time.Millisecond
	DefaultUndoGroupTimeout = 250 * time.Millisecond
	DefaultKeymapName       = "default-global"
)

// Option is a functional option for building a Config, mirroring
// buffer.Option: each Option mutates the Config under construction,
// applied in order over the built-in defaults in Default().
type Option func(*Config)

// Default returns the built-in Config, with any opts applied on top.
// This is the only constructor: there is no Load/Watch/Reload, since
// configuration is fixed at build time.
func Default(opts ...Option) *Config {
	c := &Config{
		TabWidth:         DefaultTabWidth,
		ScrollMargin:     DefaultScrollMargin,
		KillRingCapacity: DefaultKillRingCapacity,
		PrefixTimeout:    DefaultPrefixTimeout,
		UndoGroupTimeout: DefaultUndoGroupTimeout,
		DefaultKeymap:    DefaultKeymapName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTabWidth overrides the default tab width. Non-positive values
// are ignored, matching buffer.WithTabWidth's guard.
func WithTabWidth(width int) Option {
	return func(c *Config) {
		if width > 0 {
			c.TabWidth = width
		}
	}
}

// WithScrollMargin overrides the scroll-off margin. Negative values
// are ignored; zero is legal (scroll only once the cursor leaves the
// viewport entirely).
func WithScrollMargin(lines int) Option {
	return func(c *Config) {
		if lines >= 0 {
			c.ScrollMargin = lines
		}
	}
}

// WithKillRingCapacity overrides the number of fragments the kill ring
// retains. Non-positive values are ignored.
func WithKillRingCapacity(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.KillRingCapacity = n
		}
	}
}

// WithPrefixTimeout overrides the resolver's idle-prefix timeout.
// Non-positive durations are ignored.
func WithPrefixTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.PrefixTimeout = d
		}
	}
}

// WithUndoGroupTimeout overrides the undo coalescer's group timeout.
// Non-positive durations are ignored.
func WithUndoGroupTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.UndoGroupTimeout = d
		}
	}
}

// WithDefaultKeymap overrides the keymap loaded at startup. An empty
// name is ignored.
func WithDefaultKeymap(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.DefaultKeymap = name
		}
	}
}
