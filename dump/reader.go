// Package dump recovers (title, markup) records from encyclopedia XML dumps
// by matching fixed marker byte sequences, one byte range at a time.
package dump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/fwojciec/corpusmaker"
	"golang.org/x/net/html"
)

// Ensure Reader implements corpusmaker.RecordReader at compile time.
var _ corpusmaker.RecordReader = (*Reader)(nil)

var (
	startTitle = []byte(corpusmaker.StartTitleMarker)
	endTitle   = []byte(corpusmaker.EndTitleMarker)
	startText  = []byte(corpusmaker.StartTextMarker)
	endText    = []byte(corpusmaker.EndTextMarker)
)

// bufferSize is the read-ahead buffer used over the underlying stream.
const bufferSize = 64 * 1024

// Reader extracts the records whose title marker starts inside a byte range.
//
// A record that has started is always read to completion, even past the end
// of the range. The neighbouring split's reader may start inside that same
// record; it skips ahead to the next complete title marker.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
	rng    corpusmaker.ByteRange
	pos    int64
	buf    bytes.Buffer
	done   bool
	closed bool
}

// NewReader seeks rs to the start of rng and returns a Reader over it.
// If rs implements io.Closer it is closed by Close.
func NewReader(rs io.ReadSeeker, rng corpusmaker.ByteRange) (*Reader, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if _, err := rs.Seek(rng.Start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to %d: %w", rng.Start, err)
	}

	r := &Reader{
		br:  bufio.NewReaderSize(rs, bufferSize),
		rng: rng,
		pos: rng.Start,
	}
	if c, ok := rs.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// Open opens the dump at path and returns a Reader over rng.
func Open(path string, rng corpusmaker.ByteRange) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f, rng)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Pos returns the absolute position of the next byte to be read.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Consumed returns the number of bytes read since the start of the range.
func (r *Reader) Consumed() int64 {
	return r.pos - r.rng.Start
}

// Progress returns the fraction of the range consumed.
func (r *Reader) Progress() float64 {
	if r.rng.Len() == 0 {
		return 1
	}
	return float64(r.Consumed()) / float64(r.rng.Len())
}

// Next returns the next complete record in the range.
// Returns io.EOF once no further record starts inside the range or the
// stream ends before a record is complete; a partial record is dropped.
func (r *Reader) Next() (*corpusmaker.DumpRecord, error) {
	if r.closed {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "reader is closed")
	}
	if r.done || r.pos >= r.rng.End {
		r.done = true
		return nil, io.EOF
	}

	rec, err := r.next()
	r.buf.Reset()
	if err != nil {
		r.done = true
		return nil, err
	}
	return rec, nil
}

func (r *Reader) next() (*corpusmaker.DumpRecord, error) {
	if err := r.readUntilMatch(startTitle, false, true); err != nil {
		return nil, err
	}
	// From here on the record is in progress and is read to completion
	// regardless of the range end.
	if err := r.readUntilMatch(endTitle, true, false); err != nil {
		return nil, err
	}
	title := r.take(len(endTitle))

	if err := r.readUntilMatch(startText, false, false); err != nil {
		return nil, err
	}
	if err := r.readUntilMatch(endText, true, false); err != nil {
		return nil, err
	}
	markup := r.take(len(endText))

	return &corpusmaker.DumpRecord{
		Title:  Unescape(title),
		Markup: Unescape(markup),
	}, nil
}

// take returns the buffered bytes minus the trailing marker and clears the buffer.
func (r *Reader) take(markerLen int) string {
	b := r.buf.Bytes()
	s := string(b[:len(b)-markerLen])
	r.buf.Reset()
	return s
}

// readUntilMatch consumes bytes until match has been read. Bytes are
// appended to the buffer when withinBlock is set. A bounded search gives up
// with io.EOF once the range end is reached with no partial match in
// progress. Markers must not repeat their first byte, which holds for all
// dump markers and lets a mismatch restart on the current byte.
func (r *Reader) readUntilMatch(match []byte, withinBlock, bounded bool) error {
	i := 0
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}
			return fmt.Errorf("failed to read dump at %d: %w", r.pos, err)
		}
		r.pos++

		if withinBlock {
			r.buf.WriteByte(b)
		}

		if b == match[i] {
			i++
			if i >= len(match) {
				return nil
			}
		} else if b == match[0] {
			i = 1
		} else {
			i = 0
		}

		if bounded && i == 0 && r.pos >= r.rng.End {
			return io.EOF
		}
	}
}

// Close releases the underlying stream. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.done = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// All returns an iterator over the remaining records. The reader is closed
// when iteration ends, including when the caller stops early. A read error
// is yielded once and ends the sequence.
func (r *Reader) All() iter.Seq2[*corpusmaker.DumpRecord, error] {
	return func(yield func(*corpusmaker.DumpRecord, error) bool) {
		defer r.Close()
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Unescape decodes the markup entities of an escaped dump field and replaces
// invalid UTF-8 sequences with the replacement character.
func Unescape(s string) string {
	return strings.ToValidUTF8(html.UnescapeString(s), "\uFFFD")
}
