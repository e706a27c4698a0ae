package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("doctor not found")))
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("update: %w", Forbidden("no right"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "bad date", MessageOf(InvalidInput("bad date")))
	assert.Empty(t, MessageOf(errors.New("pq: connection refused")))
}

func TestIs_MatchesSentinelThroughWrapping(t *testing.T) {
	sentinel := Conflict("slot already booked")
	wrapped := fmt.Errorf("create appointment: %w", Conflict("slot already booked"))

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, Conflict("other")))
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("parse error")
	err := Wrap(KindInvalidInput, "invalid time", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid time: parse error", err.Error())
}
