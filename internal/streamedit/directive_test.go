package streamedit

import "testing"

func TestParseDirectiveBasic(t *testing.T) {
	d, err := ParseDirective("s/foo/bar/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Global || d.Print {
		t.Errorf("expected no flags set, got %+v", d)
	}
	got, matched := d.Apply("a foo b foo c")
	if !matched {
		t.Fatalf("expected a match")
	}
	if got != "a bar b foo c" {
		t.Errorf("got %q, want first-match-only replacement", got)
	}
}

func TestParseDirectiveGlobal(t *testing.T) {
	d, err := ParseDirective("s/foo/bar/g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, matched := d.Apply("foo foo foo")
	if !matched || got != "bar bar bar" {
		t.Errorf("got (%q, %v), want (\"bar bar bar\", true)", got, matched)
	}
}

func TestParseDirectiveCaseInsensitive(t *testing.T) {
	d, err := ParseDirective("s/foo/bar/gi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, matched := d.Apply("FOO Foo foo")
	if !matched || got != "bar bar bar" {
		t.Errorf("got (%q, %v), want (\"bar bar bar\", true)", got, matched)
	}
}

func TestParseDirectiveNoMatch(t *testing.T) {
	d, err := ParseDirective("s/zzz/bar/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, matched := d.Apply("no match here")
	if matched || got != "no match here" {
		t.Errorf("got (%q, %v), want unchanged input and no match", got, matched)
	}
}

func TestParseDirectiveEscapedDelimiter(t *testing.T) {
	d, err := ParseDirective(`s/a\/b/c/`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, matched := d.Apply("x a/b y")
	if !matched || got != "x c y" {
		t.Errorf("got (%q, %v), want (\"x c y\", true)", got, matched)
	}
}

func TestParseDirectiveRejectsMalformed(t *testing.T) {
	cases := []string{
		"not-a-directive",
		"s/only-one-slash",
		"s/a/b/z", // unknown flag
	}
	for _, c := range cases {
		if _, err := ParseDirective(c); err == nil {
			t.Errorf("ParseDirective(%q) should have failed", c)
		}
	}
}

func TestParseDirectiveRejectsBadRegex(t *testing.T) {
	if _, err := ParseDirective("s/[/x/"); err == nil {
		t.Error("expected an error for an unterminated character class")
	}
}

func TestParseScript(t *testing.T) {
	script := "s/foo/bar/\n\n  \ns/baz/qux/g"
	directives, err := ParseScript(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(directives) != 2 {
		t.Fatalf("got %d directives, want 2 (blank lines skipped)", len(directives))
	}
}

func TestDirectivesAppliedInOrder(t *testing.T) {
	directives, err := ParseScript("s/a/b/\ns/b/c/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result := "a"
	for _, d := range directives {
		result, _ = d.Apply(result)
	}
	if result != "c" {
		t.Errorf("got %q, want \"c\" (a->b->c chained)", result)
	}
}
