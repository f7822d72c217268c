package streamedit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/obs/log"
)

// Options configures one stream-mode run.
type Options struct {
	// Path is the file to read from and, when InPlace is set, write
	// back to. Empty means read from the Input reader (stdin) and
	// write to Output (stdout); InPlace is invalid without a Path.
	Path string

	// InPlace requests an atomic in-place rewrite of Path via
	// buffer.Save's temp-file-then-rename sequence, instead of writing
	// the result to Output.
	InPlace bool

	Input  io.Reader
	Output io.Writer

	Log log.Logger
}

// Run applies directives, in order, to every line of the buffer named
// by opts, writing the result per opts.InPlace. It returns the number
// of lines that matched at least one directive (reported at Info level
// and useful to a caller deciding the process exit code).
func Run(directives []*Directive, opts Options) (int, error) {
	l := opts.Log
	if l == nil {
		l = log.Discard()
	}

	var buf *buffer.Buffer
	var err error
	if opts.Path != "" {
		f, openErr := os.Open(opts.Path)
		if openErr != nil {
			return 0, fmt.Errorf("streamedit: %w", openErr)
		}
		defer f.Close()
		buf, err = buffer.NewBufferFromReader(f)
	} else {
		buf, err = buffer.NewBufferFromReader(opts.Input)
	}
	if err != nil {
		return 0, fmt.Errorf("streamedit: reading input: %w", err)
	}

	var out strings.Builder
	matched := 0
	lineEnding := buf.LineEnding().Sequence()
	for i := uint32(0); i < buf.LineCount(); i++ {
		result := buf.LineText(i)
		lineMatched := false
		for _, d := range directives {
			var did bool
			result, did = d.Apply(result)
			if did {
				lineMatched = true
				if d.Print {
					fmt.Fprintln(opts.Output, result)
				}
			}
		}
		if lineMatched {
			matched++
			l.Info("line matched", "line", i, "result", result)
		}
		out.WriteString(result)
		if i+1 < buf.LineCount() {
			out.WriteString(lineEnding)
		}
	}

	if opts.InPlace {
		if opts.Path == "" {
			return matched, fmt.Errorf("streamedit: in-place rewrite requires a Path")
		}
		result := buffer.NewBufferFromString(out.String())
		if _, err := result.Save(opts.Path, true); err != nil {
			return matched, fmt.Errorf("streamedit: saving %s: %w", opts.Path, err)
		}
		return matched, nil
	}

	if _, err := io.WriteString(opts.Output, out.String()); err != nil {
		return matched, fmt.Errorf("streamedit: writing output: %w", err)
	}
	return matched, nil
}

