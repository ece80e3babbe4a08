package corpusmaker

import (
	"io"
	"unicode/utf8"
)

// CountingWriter forwards writes to an underlying writer while counting the
// characters written. It is append-only.
type CountingWriter struct {
	w io.Writer
	n int
}

// NewCountingWriter wraps w. If w is already a CountingWriter it is returned
// as is so that nested renders share one position.
func NewCountingWriter(w io.Writer) *CountingWriter {
	if cw, ok := w.(*CountingWriter); ok {
		return cw
	}
	return &CountingWriter{w: w}
}

// Write implements io.Writer. Only the bytes accepted by the underlying
// writer are counted.
func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += utf8.RuneCount(p[:n])
	return n, err
}

// WriteString implements io.StringWriter.
func (c *CountingWriter) WriteString(s string) (int, error) {
	n, err := io.WriteString(c.w, s)
	c.n += utf8.RuneCountInString(s[:n])
	return n, err
}

// Len returns the number of characters written so far.
func (c *CountingWriter) Len() int {
	return c.n
}
