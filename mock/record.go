package mock

import "github.com/fwojciec/corpusmaker"

var _ corpusmaker.RecordReader = (*RecordReader)(nil)

// RecordReader is a mock implementation of corpusmaker.RecordReader.
type RecordReader struct {
	NextFn     func() (*corpusmaker.DumpRecord, error)
	PosFn      func() int64
	ProgressFn func() float64
	CloseFn    func() error
}

func (r *RecordReader) Next() (*corpusmaker.DumpRecord, error) {
	return r.NextFn()
}

func (r *RecordReader) Pos() int64 {
	return r.PosFn()
}

func (r *RecordReader) Progress() float64 {
	return r.ProgressFn()
}

func (r *RecordReader) Close() error {
	return r.CloseFn()
}
