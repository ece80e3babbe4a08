package corpusmaker

// Markers delimiting the fields of a page record in a dump. They are matched
// byte for byte; the dump is never parsed as structured XML.
const (
	StartTitleMarker = "<title>"
	EndTitleMarker   = "</title>"
	StartTextMarker  = `<text xml:space="preserve">`
	EndTextMarker    = "</text>"
)

// ByteRange is the half-open interval [Start, End) of a dump file assigned
// to one extraction worker.
type ByteRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Validate returns an error if the range is negative or inverted.
func (r ByteRange) Validate() error {
	if r.Start < 0 {
		return Errorf(EINVALID, "byte range start must not be negative")
	}
	if r.End < r.Start {
		return Errorf(EINVALID, "byte range end %d before start %d", r.End, r.Start)
	}
	return nil
}

// Len returns the number of bytes in the range.
func (r ByteRange) Len() int64 {
	return r.End - r.Start
}

// DumpRecord is one page recovered from a dump: its title and its
// entity-unescaped raw markup.
type DumpRecord struct {
	Title  string `json:"title"`
	Markup string `json:"markup"`
}

// RecordReader produces the records that start inside one byte range of a dump.
//
// Records are never truncated at the range end: a record whose title begins
// before End is read to completion even if that moves the read position past
// End. The reader of the next range only starts records at a complete title
// marker found at or after its own Start, so it never emits a truncated copy
// of that record.
type RecordReader interface {
	// Next returns the next complete record.
	// Returns io.EOF when the range is exhausted or the stream ends mid-record.
	Next() (*DumpRecord, error)

	// Pos returns the absolute read position in the underlying stream.
	Pos() int64

	// Progress returns (Pos - Start) / (End - Start). Values slightly above 1
	// are possible because in-progress records are read past End.
	Progress() float64

	// Close releases the underlying stream.
	Close() error
}
