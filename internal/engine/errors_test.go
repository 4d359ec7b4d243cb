package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvariantError_Error(t *testing.T) {
	err := NewMissingInputError("inv", "ghost")
	assert.Equal(t, `MISSING_INPUT: no input slot for source "ghost" (module=inv)`, err.Error())
	assert.Equal(t, "ghost", err.Details["source"])

	err = NewReentrantSendError("broadcaster")
	assert.Equal(t, "REENTRANT_SEND: SendPulse called while a drain is in progress", err.Error())
}

func TestIsInvariantError(t *testing.T) {
	err := fmt.Errorf("build: %w", NewDuplicateModuleError("a"))

	assert.True(t, IsInvariantError(err, ErrCodeDuplicateModule))
	assert.True(t, IsInvariantError(err, ""))
	assert.False(t, IsInvariantError(err, ErrCodeMissingInput))
	assert.False(t, IsInvariantError(errors.New("plain"), ""))
	assert.False(t, IsInvariantError(nil, ""))
}
