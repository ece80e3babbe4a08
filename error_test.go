package corpusmaker_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/corpusmaker"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := corpusmaker.Errorf(corpusmaker.ENOTFOUND, "article %q not found", "Paris")

	assert.Equal(t, corpusmaker.ENOTFOUND, corpusmaker.ErrorCode(err))
	assert.Equal(t, "article \"Paris\" not found", corpusmaker.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, corpusmaker.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, corpusmaker.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("open split: %w", corpusmaker.Errorf(corpusmaker.EINVALID, "bad range"))

	assert.Equal(t, corpusmaker.EINVALID, corpusmaker.ErrorCode(err))
	assert.Equal(t, "bad range", corpusmaker.ErrorMessage(err))
}

func TestErrorCode_InternalError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, corpusmaker.EINTERNAL, corpusmaker.ErrorCode(err))
	assert.Equal(t, "Internal error.", corpusmaker.ErrorMessage(err))
}
