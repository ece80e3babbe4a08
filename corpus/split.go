package corpus

import "github.com/fwojciec/corpusmaker"

// PlanSplits divides [0, size) into n contiguous half-open ranges of nearly
// equal length. When size is smaller than n, fewer ranges are returned so
// that none is empty; an empty file yields a single empty range.
// Returns EINVALID if size is negative or n is not positive.
func PlanSplits(size int64, n int) ([]corpusmaker.ByteRange, error) {
	if size < 0 {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "size must not be negative")
	}
	if n <= 0 {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "split count must be positive")
	}
	if int64(n) > size {
		n = int(max(size, 1))
	}

	splits := make([]corpusmaker.ByteRange, n)
	for i := range splits {
		splits[i] = corpusmaker.ByteRange{
			Start: size * int64(i) / int64(n),
			End:   size * int64(i+1) / int64(n),
		}
	}
	return splits, nil
}
