package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrActivityNotFound, ErrCodeNotFound))
	assert.False(t, IsDomainError(ErrActivityNotFound, ErrCodeInvalid))
	assert.False(t, IsDomainError(errors.New("plain"), ErrCodeInternal))
	assert.False(t, IsDomainError(nil, ErrCodeNotFound))
}

func TestIsDomainErrorUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("listing failed: %w", WrapError(ErrCodeUnavailable, "store down", errors.New("dial tcp")))
	assert.True(t, IsDomainError(wrapped, ErrCodeUnavailable))
}

func TestWrapErrorMessage(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432")
	err := WrapError(ErrCodeUnavailable, "activity store unavailable", cause)

	assert.Equal(t, "activity store unavailable: dial tcp 127.0.0.1:5432", err.Error())
	assert.ErrorIs(t, err, cause)
}
