package editor

// KillRingCapacity is the default maximum number of fragments the kill
// ring retains, matching the "~60" figure in spec §3.
const KillRingCapacity = 60

// KillRing is a bounded, ordered sequence of killed text fragments,
// most-recent first, with yank-pop rotation (spec §3's kill_ring and
// the `Coalescer`'s ready-made example of a small policy type wrapping
// a plain slice rather than reaching for a container library).
type KillRing struct {
	capacity int
	entries  []string // entries[0] is most recent
	rotation int       // offset into entries consumed by the last Rotate
}

// NewKillRing creates an empty kill ring with the default capacity.
func NewKillRing() *KillRing {
	return &KillRing{capacity: KillRingCapacity}
}

// NewKillRingWithCapacity creates an empty kill ring with the given
// capacity (editorconfig.Config.KillRingCapacity). Non-positive values
// fall back to the default.
func NewKillRingWithCapacity(capacity int) *KillRing {
	if capacity <= 0 {
		capacity = KillRingCapacity
	}
	return &KillRing{capacity: capacity}
}

// Kill pushes text onto the front of the ring, evicting the oldest
// fragment once capacity is exceeded. Empty text is a no-op.
func (k *KillRing) Kill(text string) {
	if text == "" {
		return
	}
	k.entries = append([]string{text}, k.entries...)
	if len(k.entries) > k.capacity {
		k.entries = k.entries[:k.capacity]
	}
	k.rotation = 0
}

// Yank returns the most recently killed fragment, and resets rotation
// so a following Rotate starts from the front of the ring.
func (k *KillRing) Yank() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	k.rotation = 0
	return k.entries[0], true
}

// Rotate advances to the next-oldest fragment (yank-pop): the caller
// is expected to have just yanked and replaced that text with this
// call's result. Wraps around to the newest fragment after the oldest.
func (k *KillRing) Rotate() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	k.rotation = (k.rotation + 1) % len(k.entries)
	return k.entries[k.rotation], true
}

// Len returns the number of fragments currently stored.
func (k *KillRing) Len() int {
	return len(k.entries)
}
