package buffer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/keystorm/internal/engine/rope"
)

// ErrEncodingLossyRefused is returned by Save when the buffer's content
// was loaded with invalid-UTF-8 replacement and the caller has not
// explicitly allowed a lossy write-back.
var ErrEncodingLossyRefused = errors.New("buffer: refusing to save lossily-decoded content without explicit confirmation")

// NewBufferFromStream loads a buffer from r using rope.LoadStream, which
// tolerates invalid UTF-8 (replacing bad sequences with U+FFFD) and keeps
// peak memory bounded by the final rope size rather than the input size.
// ctx cancellation and the optional cancel channel are both honored.
func NewBufferFromStream(ctx context.Context, r io.Reader, path string, cancel <-chan struct{}, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)

	loaded, status, err := rope.LoadStream(ctx, r, cancel)
	if err != nil {
		return nil, err
	}

	text := b.normalizeLineEndings(loaded.String())
	b.rope = rope.FromString(text)
	b.path = path
	b.encodingStatus = status
	b.dirty = false
	b.version = 0

	return b, nil
}

// Save atomically writes the buffer's content to path (or the buffer's
// own Path if path is ""), using a temp-file-then-rename sequence so a
// crash mid-write never leaves a truncated file in place. Saving content
// whose encodingStatus is not Clean is refused unless allowLossy is true.
func (b *Buffer) Save(path string, allowLossy bool) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if path == "" {
		path = b.path
	}
	if path == "" {
		return 0, errors.New("buffer: no path to save to")
	}
	if b.encodingStatus != rope.EncodingClean && !allowLossy {
		return 0, ErrEncodingLossyRefused
	}

	text := b.rope.String()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".keystorm-save-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	n, err := tmp.WriteString(text)
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, err
	}

	b.path = path
	b.dirty = false
	return n, nil
}
