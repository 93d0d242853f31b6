package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsMatchSentinels(t *testing.T) {
	wrapped := fmt.Errorf("failed to pause: %w", NewInvalidStateError("SIP_000001", "STOPPED", "pause"))

	assert.True(t, errors.Is(wrapped, ErrInvalidState))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "failed to pause: invalid operation 'pause' for SIP SIP_000001 in state STOPPED", wrapped.Error())

	assert.True(t, errors.Is(NewNotFoundError(KindSip, "x"), ErrNotFound))
	assert.True(t, errors.Is(NewValidationError("amount must be positive"), ErrValidation))
}

func TestIsFundNotFound(t *testing.T) {
	assert.True(t, IsFundNotFound(fmt.Errorf("nav: %w", NewNotFoundError(KindFund, "FUND_1"))))
	assert.False(t, IsFundNotFound(NewNotFoundError(KindSip, "SIP_1")))
	assert.False(t, IsFundNotFound(errors.New("boom")))
}
