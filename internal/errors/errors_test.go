package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "not here", NotFound("not here").Error())

	wrapped := Wrap(errors.New("io timeout"), ErrCodeInternal, "fetch failed")
	assert.Equal(t, "fetch failed: io timeout", wrapped.Error())
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsValidation(Validation("x")))
	assert.True(t, IsUpstream(Upstream("x")))
	assert.True(t, IsInternal(Internal("x")))

	assert.False(t, IsNotFound(Conflict("x")))
	assert.False(t, IsUpstream(errors.New("plain")))
	assert.False(t, IsUpstream(nil))
}

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("exchange authorization code: %w", Upstream(`{"error":"invalid_grant"}`))

	assert.True(t, IsUpstream(err))
	assert.Equal(t, ErrCodeUpstream, GetCode(err))
	assert.Equal(t, `{"error":"invalid_grant"}`, GetMessage(err))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
}

func TestGetMessage(t *testing.T) {
	assert.Equal(t, "boom", GetMessage(errors.New("boom")))
	assert.Equal(t, "", GetMessage(nil))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("name", "name is required")
	assert.Equal(t, "name", err.Field)
	assert.True(t, IsValidation(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, ErrCodeInternal, "wrapped")
	assert.ErrorIs(t, err, cause)
}
