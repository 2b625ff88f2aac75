package domainerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "tradegate/pkg/domain-errors"
)

func TestHasCode(t *testing.T) {
	t.Run("finds the outermost code", func(t *testing.T) {
		err := dErrors.New(dErrors.CodeValidation, "bad input")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.False(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("finds a wrapped code", func(t *testing.T) {
		inner := dErrors.New(dErrors.CodeNotFound, "missing")
		outer := dErrors.Wrap(inner, dErrors.CodeStoreUnavailable, "lookup failed")
		assert.True(t, dErrors.HasCode(outer, dErrors.CodeStoreUnavailable))
		assert.True(t, dErrors.HasCode(outer, dErrors.CodeNotFound))
	})

	t.Run("sees through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("context: %w", dErrors.New(dErrors.CodeConflict, "clash"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, dErrors.HasCode(errors.New("boom"), dErrors.CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, dErrors.CodeTimeout, dErrors.CodeOf(dErrors.New(dErrors.CodeTimeout, "slow")))
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("boom")))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, dErrors.Wrap(nil, dErrors.CodeInternal, "ignored"))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := dErrors.Wrap(cause, dErrors.CodeStoreUnavailable, "store call failed")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store call failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRetryable(t *testing.T) {
	assert.True(t, dErrors.Retryable(dErrors.New(dErrors.CodeDuplicate, "collision")))
	assert.True(t, dErrors.Retryable(dErrors.New(dErrors.CodeTimeout, "slow")))
	assert.True(t, dErrors.Retryable(dErrors.New(dErrors.CodeStoreUnavailable, "down")))
	assert.False(t, dErrors.Retryable(dErrors.New(dErrors.CodeValidation, "bad input")))
	assert.False(t, dErrors.Retryable(dErrors.New(dErrors.CodePrerequisite, "not registered")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad input", dErrors.Message(dErrors.New(dErrors.CodeValidation, "bad input")))
	assert.Equal(t, "boom", dErrors.Message(errors.New("boom")))
	assert.Empty(t, dErrors.Message(nil))
}
