package rope

import (
	"bytes"
	"context"
	"testing"
)

func TestGraphemeIteratorASCII(t *testing.T) {
	r := FromString("abc")
	it := Graphemes(r, 0, r.Len())
	var got []string
	for it.Next() {
		g := it.Grapheme()
		got = append(got, r.Slice(g.Start, g.End))
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cluster %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGraphemeIteratorCombiningMark(t *testing.T) {
	// "e" + combining acute accent (U+0301) is one grapheme cluster.
	r := FromString("éx")
	it := Graphemes(r, 0, r.Len())
	count := 0
	for it.Next() {
		count++
	}
	if count != 2 {
		t.Fatalf("got %d clusters, want 2", count)
	}
}

func TestIsGraphemeBoundary(t *testing.T) {
	r := FromString("éx")
	if IsGraphemeBoundary(r, 1) {
		t.Errorf("offset 1 splits a combining mark and must not be a boundary")
	}
	if !IsGraphemeBoundary(r, 0) {
		t.Errorf("offset 0 must always be a boundary")
	}
	if !IsGraphemeBoundary(r, r.Len()) {
		t.Errorf("end offset must always be a boundary")
	}
}

func TestGraphemeColumnRoundTrip(t *testing.T) {
	r := FromString("hello")
	for col := uint32(0); col <= 5; col++ {
		off := OffsetForGraphemeColumn(r, 0, col)
		got := GraphemeColumn(r, off)
		if got != col {
			t.Errorf("column %d round-tripped to %d", col, got)
		}
	}
}

func TestLoadStreamCleanUTF8(t *testing.T) {
	data := "héllo wörld\n" + string(make([]byte, 0))
	r, status, err := LoadStream(context.Background(), bytes.NewReader([]byte(data)), nil)
	if err != nil {
		t.Fatalf("LoadStream: %v", err)
	}
	if status != EncodingClean {
		t.Errorf("status = %v, want EncodingClean", status)
	}
	if r.String() != data {
		t.Errorf("round-trip mismatch: got %q want %q", r.String(), data)
	}
}

func TestLoadStreamInvalidUTF8Replaced(t *testing.T) {
	data := []byte("abc\xff\xfedef")
	r, status, err := LoadStream(context.Background(), bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("LoadStream: %v", err)
	}
	if status != EncodingLossyReplaced {
		t.Errorf("status = %v, want EncodingLossyReplaced", status)
	}
	if got := r.String(); got == string(data) {
		t.Errorf("expected invalid bytes to be replaced, got unchanged %q", got)
	}
}

func TestLoadStreamChunkBoundarySplitsRune(t *testing.T) {
	// A multibyte rune straddling exactly the internal chunk size must
	// still decode correctly, not get torn in half.
	pad := make([]byte, streamChunkSize-1)
	for i := range pad {
		pad[i] = 'a'
	}
	data := append(pad, []byte("é")...)
	r, status, err := LoadStream(context.Background(), bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("LoadStream: %v", err)
	}
	if status != EncodingClean {
		t.Errorf("status = %v, want EncodingClean", status)
	}
	if r.String() != string(data) {
		t.Errorf("rune split across chunk boundary corrupted: got len %d want len %d", len(r.String()), len(data))
	}
}

func TestLoadStreamCancelled(t *testing.T) {
	cancel := make(chan struct{})
	close(cancel)
	_, _, err := LoadStream(context.Background(), bytes.NewReader([]byte("hello")), cancel)
	if err != ErrLoadCancelled {
		t.Fatalf("err = %v, want ErrLoadCancelled", err)
	}
}
