// Package streamedit implements the engine's non-interactive CLI mode
// (spec §6's "Stream-mode interface"): an ordered sequence of
// substitution directives `s/pattern/replacement/flags` applied
// line-by-line across a buffer read from standard input or a file,
// written to standard output or atomically in place.
//
// Grounded on the teacher's internal/project/search package: pattern
// compilation and the `(?i)` case-insensitive-flag idiom are lifted
// directly from ContentSearcher's regexp.Compile call, generalized
// from read-only search to search-and-replace.
package streamedit

import (
	"fmt"
	"regexp"
	"strings"
)

// Directive is one parsed `s/pattern/replacement/flags` command.
type Directive struct {
	Pattern     *regexp.Regexp
	Replacement string
	Global      bool // g flag: replace every match per line, not just the first
	Print       bool // p flag: echo the line to stderr when it matches
}

// ParseDirective parses a single substitution command of the form
// s/pattern/replacement/flags. The delimiter is always '/'; a
// backslash-escaped delimiter inside pattern or replacement is
// unescaped to a literal '/'. Recognized flags are g (global) and p
// (print); i (case-insensitive) is folded into the compiled pattern
// via the "(?i)" prefix, the same way the teacher's search package
// applies ContentSearchOptions.CaseSensitive.
func ParseDirective(s string) (*Directive, error) {
	if !strings.HasPrefix(s, "s/") {
		return nil, fmt.Errorf("streamedit: directive %q must start with \"s/\"", s)
	}
	parts, err := splitUnescaped(s[1:], '/')
	if err != nil {
		return nil, fmt.Errorf("streamedit: %w", err)
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("streamedit: directive %q must have exactly 3 '/'-delimited fields, got %d", s, len(parts))
	}
	pattern, replacement, flags := parts[0], parts[1], parts[2]

	var global, caseInsensitive, print bool
	for _, f := range flags {
		switch f {
		case 'g':
			global = true
		case 'i':
			caseInsensitive = true
		case 'p':
			print = true
		default:
			return nil, fmt.Errorf("streamedit: directive %q has unknown flag %q", s, f)
		}
	}

	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("streamedit: invalid pattern in %q: %w", s, err)
	}

	return &Directive{Pattern: re, Replacement: replacement, Global: global, Print: print}, nil
}

// ParseScript parses a script of newline-separated directives,
// skipping blank lines, matching the -e/-f CLI flags' "may repeat"
// semantics (spec §6): each line of a -f file, or each repeated -e
// argument, is one directive.
func ParseScript(script string) ([]*Directive, error) {
	var directives []*Directive
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d, err := ParseDirective(line)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	return directives, nil
}

// Apply runs d over line, returning the substituted result and
// whether any replacement occurred.
func (d *Directive) Apply(line string) (string, bool) {
	if d.Global {
		if !d.Pattern.MatchString(line) {
			return line, false
		}
		return d.Pattern.ReplaceAllString(line, d.Replacement), true
	}
	loc := d.Pattern.FindStringIndex(line)
	if loc == nil {
		return line, false
	}
	replaced := d.Pattern.ReplaceAllString(line[loc[0]:loc[1]], d.Replacement)
	return line[:loc[0]] + replaced + line[loc[1]:], true
}

// splitUnescaped splits s on the first three unescaped occurrences of
// sep, unescaping \sep to a literal sep in each returned field. It
// stops after collecting the field following the second separator
// (i.e. it returns exactly 3 fields for a well-formed s/a/b/flags
// body), erroring if fewer than 2 unescaped separators are found.
func splitUnescaped(s string, sep byte) ([]string, error) {
	var fields []string
	var current strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == sep {
			current.WriteByte(sep)
			i++
			continue
		}
		if c == sep && len(fields) < 2 {
			fields = append(fields, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(c)
	}
	fields = append(fields, current.String())
	if len(fields) < 3 {
		return nil, fmt.Errorf("expected at least 2 unescaped %q delimiters", sep)
	}
	return fields, nil
}
