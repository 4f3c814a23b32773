package driver

import (
	"io"
	"strings"
)

// Trace buffers execution trace lines in memory for the duration of a
// run. The whole buffer is written once at the end of execution —
// the ISS does no incremental I/O beyond that single write.
type Trace struct {
	lines []string
}

// NewTrace returns an empty trace buffer.
func NewTrace() *Trace {
	return &Trace{lines: make([]string, 0, 1024)}
}

// Append adds one retired-instruction trace line.
func (t *Trace) Append(line string) {
	t.lines = append(t.lines, line)
}

// Len reports how many lines have been recorded.
func (t *Trace) Len() int {
	return len(t.lines)
}

// WriteTo writes every buffered line to w, newline-joined, with no
// trailing newline after the final line.
func (t *Trace) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, strings.Join(t.lines, "\n"))
	return int64(n), err
}

// String renders the trace exactly as it would be written to a file.
func (t *Trace) String() string {
	return strings.Join(t.lines, "\n")
}
