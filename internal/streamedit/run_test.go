package streamedit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunToOutput(t *testing.T) {
	directives, err := ParseScript("s/foo/bar/g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out strings.Builder
	matched, err := Run(directives, Options{
		Input:  strings.NewReader("foo foo\nbaz\nfoo\n"),
		Output: &out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched != 2 {
		t.Errorf("matched = %d, want 2", matched)
	}
	want := "bar bar\nbaz\nbar\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("hello world\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	directives, err := ParseScript("s/world/keystorm/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Run(directives, Options{Path: path, InPlace: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "hello keystorm\n" {
		t.Errorf("file content = %q, want %q", got, "hello keystorm\n")
	}
}

func TestRunInPlaceWithoutPathErrors(t *testing.T) {
	directives, err := ParseScript("s/a/b/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Run(directives, Options{InPlace: true, Input: strings.NewReader("a\n")}); err == nil {
		t.Error("expected an error when InPlace is set without a Path")
	}
}
