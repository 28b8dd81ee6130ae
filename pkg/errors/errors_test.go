package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	clone := Clone(ErrNotFound, "student not found")
	assert.Equal(t, "student not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.True(t, errors.Is(clone, ErrNotFound))
	assert.False(t, errors.Is(clone, ErrValidation))
	assert.True(t, errors.Is(fmt.Errorf("load: %w", ErrStorageMiss), ErrStorageMiss))
}

func TestWrapAndFromError(t *testing.T) {
	cause := errors.New("bad json")
	wrapped := Wrap(cause, ErrValidation.Code, ErrValidation.Status, "invalid score payload")
	assert.Equal(t, "invalid score payload: bad json", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.Same(t, wrapped, FromError(fmt.Errorf("ctx: %w", wrapped)))

	internal := FromError(cause)
	assert.Equal(t, ErrInternal.Code, internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Nil(t, FromError(nil))
}
