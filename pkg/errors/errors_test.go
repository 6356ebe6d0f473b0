package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsType_FollowsWrapChain(t *testing.T) {
	err := fmt.Errorf("chain: %w", NewProviderTimeoutError("openai", context.DeadlineExceeded))

	assert.True(t, IsType(err, ErrorTypeProviderTimeout))
	assert.False(t, IsType(err, ErrorTypeProviderUnavailable))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsType_PlainError(t *testing.T) {
	assert.False(t, IsType(fmt.Errorf("boom"), ErrorTypeInternal))
	assert.False(t, IsType(nil, ErrorTypeInternal))
}

func TestAppError_Message(t *testing.T) {
	assert.Equal(t, `UNRESOLVED_TARGET: no category matches "Plumbing"`, NewUnresolvedTargetError("category", "Plumbing").Error())
	assert.Equal(t, "MALFORMED_OUTPUT: no json: boom", NewMalformedOutputError("no json", fmt.Errorf("boom")).Error())
}
