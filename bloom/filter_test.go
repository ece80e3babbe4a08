package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/corpusmaker/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	t.Run("reports a title only after its first occurrence", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		assert.False(t, f.Seen("Paris"))
		assert.True(t, f.Seen("Paris"))
		assert.False(t, f.Seen("Berlin"))
		assert.True(t, f.Seen("Berlin"))
	})

	t.Run("lets exactly one concurrent caller claim a title", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		var wg sync.WaitGroup
		var mu sync.Mutex
		firsts := 0
		for range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !f.Seen("Rome") {
					mu.Lock()
					firsts++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, firsts)
	})
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	t.Run("approximates the number of distinct titles", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		assert.Equal(t, uint(0), f.EstimatedCount())

		f.Seen("Paris")
		f.Seen("Berlin")
		f.Seen("Rome")

		count := f.EstimatedCount()
		assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
	})

	t.Run("ignores repeated titles", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		f.Seen("Paris")
		countAfterFirst := f.EstimatedCount()

		f.Seen("Paris")
		f.Seen("Paris")

		assert.Equal(t, countAfterFirst, f.EstimatedCount())
	})
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Seen(fmt.Sprintf("Article %d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Seen(fmt.Sprintf("Missing article %d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
