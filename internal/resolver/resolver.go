// Package resolver implements the stateful per-event resolution loop
// that sits on top of the keymap trie: pending-prefix accumulation,
// Ctrl-U universal-argument parsing, a 500ms prefix timeout, and
// self-insert fallback for unbound printable characters.
//
// keymap.Registry already provides the trie (Lookup/HasPrefix); this
// package owns the state machine spec §4.5 describes, mirroring the
// history package's Coalescer in shape: a thin policy wrapper that
// decides *when* to act, built on an existing mechanism that only
// knows *how*.
package resolver

import (
	"time"
	"unicode"

	"github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/input/keymap"
)

// PrefixTimeout is how long a partial (unresolved) prefix may sit idle
// before it is flushed with a notice, matching the 500ms figure in
// spec §4.5.
const PrefixTimeout = 500 * time.Millisecond

// UniversalArgMultiplier is the factor a bare repeated Ctrl-U applies
// to the pending count (Ctrl-U Ctrl-U Ctrl-U → 4, 16, 64, ...).
const UniversalArgMultiplier = 4

// OutcomeKind discriminates a resolution Outcome.
type OutcomeKind uint8

const (
	// OutcomePending means the event extended a partial prefix; no
	// command fires yet. The front-end may display Resolver.Pending().
	OutcomePending OutcomeKind = iota
	// OutcomeExecute means a bound command matched; Action/Count are set.
	OutcomeExecute
	// OutcomeNoMatch means the accumulated prefix matches no binding;
	// the front-end should beep / show a status error.
	OutcomeNoMatch
	// OutcomeTimeout means a pending prefix expired without a follow-up
	// event and was cleared; surfaced so the front-end can show a notice.
	OutcomeTimeout
	// OutcomeSelfInsert means the event was an unbound printable
	// character; Rune/Count are set and the caller should insert Rune
	// Count times at the cursor.
	OutcomeSelfInsert
)

// Outcome is the result of feeding one key.Event through the resolver.
type Outcome struct {
	Kind   OutcomeKind
	Action string // set for OutcomeExecute: the bound command name
	Count  int    // the resolved universal argument, default 1
	Rune   rune   // set for OutcomeSelfInsert
}

// Resolver holds the in-progress prefix/count state across calls to
// Resolve. It is not safe for concurrent use — it is driven from the
// single-threaded main loop like the rest of the core.
type Resolver struct {
	registry *keymap.Registry
	ctx      *keymap.LookupContext

	pendingPrefix *key.Sequence
	pendingCount  int  // 0 means "no explicit count yet"
	haveCount     bool // true once any digit or bare Ctrl-U has been seen
	haveDigits    bool // true once a digit has been typed after Ctrl-U
	lastEvent     time.Time
	timeout       time.Duration
}

// New creates a Resolver over the given registry. ctx may be nil, in
// which case a fresh empty LookupContext is used for every lookup. The
// prefix timeout defaults to PrefixTimeout; override with SetTimeout
// (editor.New wires it from editorconfig.Config.PrefixTimeout).
func New(registry *keymap.Registry, ctx *keymap.LookupContext) *Resolver {
	return &Resolver{
		registry:      registry,
		ctx:           ctx,
		pendingPrefix: key.NewSequence(),
		timeout:       PrefixTimeout,
	}
}

// SetTimeout overrides the prefix timeout used by Tick.
func (r *Resolver) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Pending returns the in-progress prefix sequence, for front-end
// display, and whether one is in progress.
func (r *Resolver) Pending() (*key.Sequence, bool) {
	if r.pendingPrefix.IsEmpty() {
		return nil, false
	}
	return r.pendingPrefix, true
}

// Tick checks whether the pending prefix has been idle for longer than
// PrefixTimeout and, if so, clears it and returns an OutcomeTimeout.
// The main loop calls this whenever it is otherwise idle (e.g. while
// polling for the next input event with a short deadline).
func (r *Resolver) Tick(now time.Time) (Outcome, bool) {
	if r.pendingPrefix.IsEmpty() {
		return Outcome{}, false
	}
	if now.Sub(r.lastEvent) < r.timeout {
		return Outcome{}, false
	}
	r.reset()
	return Outcome{Kind: OutcomeTimeout}, true
}

// Resolve feeds one key event through the resolution loop described in
// spec §4.5. Macro teeing (step 1 of the spec's loop) is the caller's
// responsibility: the caller records the raw event before calling
// Resolve, since the resolver itself has no notion of macro state.
func (r *Resolver) Resolve(evt key.Event) Outcome {
	now := time.Now()
	r.lastEvent = now

	if isUniversalArgument(evt) {
		r.applyUniversalArgument()
		return Outcome{Kind: OutcomePending}
	}

	if r.haveCount && isDigit(evt) {
		r.appendDigit(evt)
		return Outcome{Kind: OutcomePending}
	}

	r.pendingPrefix.Add(evt)

	seq := r.pendingPrefix
	ctx := r.ctx
	if ctx == nil {
		ctx = keymap.NewLookupContext()
	}

	if binding := r.registry.Lookup(seq, ctx); binding != nil {
		count := r.resolvedCount()
		r.reset()
		return Outcome{Kind: OutcomeExecute, Action: binding.Action, Count: count}
	}

	if r.registry.HasPrefix(seq, ctx) {
		return Outcome{Kind: OutcomePending}
	}

	// No match. A single unmodified printable rune with no binding
	// self-inserts; anything else (a dead multi-key prefix, an unbound
	// control chord) is a resolution failure.
	if seq.Len() == 1 && isSelfInsertCandidate(evt) {
		count := r.resolvedCount()
		r.reset()
		return Outcome{Kind: OutcomeSelfInsert, Rune: evt.Rune, Count: count}
	}

	r.reset()
	return Outcome{Kind: OutcomeNoMatch}
}

// resolvedCount returns the pending count, defaulting to 1 when no
// explicit universal argument was given.
func (r *Resolver) resolvedCount() int {
	if !r.haveCount || r.pendingCount == 0 {
		return 1
	}
	return r.pendingCount
}

// reset clears prefix and count state, matching spec §4.6's "the
// dispatcher is responsible for clearing pending_count and
// pending_prefix after every dispatch" — the resolver does this
// itself on every terminal outcome (execute, no-match, self-insert,
// timeout) so the dispatcher never has to.
func (r *Resolver) reset() {
	r.pendingPrefix = key.NewSequence()
	r.pendingCount = 0
	r.haveCount = false
	r.haveDigits = false
}

// applyUniversalArgument handles a Ctrl-U event: the first occurrence
// seeds the count at the default multiplier; subsequent occurrences
// (with no digits yet typed) multiply again, giving 4, 16, 64, ...
func (r *Resolver) applyUniversalArgument() {
	if !r.haveCount {
		r.pendingCount = UniversalArgMultiplier
		r.haveCount = true
		return
	}
	r.pendingCount *= UniversalArgMultiplier
}

// appendDigit folds a typed digit into the pending count, replacing
// the bare Ctrl-U default once real digits start arriving.
func (r *Resolver) appendDigit(evt key.Event) {
	d := int(evt.Rune - '0')
	if !r.haveDigits {
		r.pendingCount = d
		r.haveDigits = true
		return
	}
	r.pendingCount = r.pendingCount*10 + d
}

func isUniversalArgument(evt key.Event) bool {
	return evt.Key == key.KeyRune && evt.Rune == 'u' && evt.Modifiers.HasCtrl()
}

func isDigit(evt key.Event) bool {
	return evt.Key == key.KeyRune && !evt.Modifiers.HasCtrl() && !evt.Modifiers.HasAlt() &&
		unicode.IsDigit(evt.Rune)
}

func isSelfInsertCandidate(evt key.Event) bool {
	return evt.IsChar() && !evt.IsModified()
}
