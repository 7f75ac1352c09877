package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeNotFound, "template missing")
	assert.Equal(t, "NOT_FOUND: template missing", err.Error())

	withDetails := New(ErrCodeStorageFailure, "write failed").WithDetails("disk full")
	assert.Equal(t, "STORAGE_FAILURE: write failed (disk full)", withDetails.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(cause, ErrCodeExternalAPI, "call failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeExternalAPI, err.Code)
}

func TestGetAppError(t *testing.T) {
	appErr := New(ErrCodeValidation, "bad input")
	assert.Same(t, appErr, GetAppError(appErr))

	plain := stderrors.New("plain failure")
	converted := GetAppError(plain)
	require.NotNil(t, converted)
	assert.Equal(t, ErrCodeCommandFailed, converted.Code)
	assert.ErrorIs(t, converted, plain)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NotFoundError("template \"x\"").Code)
	assert.Contains(t, NotFoundError("template \"x\"").Error(), "not found")
	assert.Equal(t, ErrCodeValidation, ValidationError("nope").Code)
	assert.Equal(t, ErrCodeStorageFailure, StorageError("write", stderrors.New("io")).Code)
	assert.Equal(t, ErrCodeExternalAPI, ExternalAPIError(stderrors.New("timeout")).Code)
}
