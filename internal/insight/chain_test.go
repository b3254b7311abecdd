package insight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain_Transitions(t *testing.T) {
	ch := newChain([]string{"a", "b", "c"})
	assert.Equal(t, InFlight, ch.state)

	m, ok := ch.next()
	assert.True(t, ok)
	assert.Equal(t, "a", m)
	ch.fail(errors.New("boom"), 0)

	m, ok = ch.next()
	assert.True(t, ok)
	assert.Equal(t, "b", m)
	ch.succeed("text", 0)

	_, ok = ch.next()
	assert.False(t, ok)
	assert.Equal(t, Succeeded, ch.state)
	assert.Equal(t, "b", ch.model)
	assert.Len(t, ch.attempts, 2)
}

func TestChain_ExhaustsToFailed(t *testing.T) {
	ch := newChain([]string{"a", "b"})
	for {
		if _, ok := ch.next(); !ok {
			break
		}
		ch.fail(errors.New("nope"), 0)
	}
	assert.Equal(t, Failed, ch.state)
	assert.EqualError(t, ch.lastErr, "nope")
	assert.Len(t, ch.attempts, 2)
}

func TestChain_Abort(t *testing.T) {
	ch := newChain([]string{"a", "b"})
	ch.abort(errors.New("cancelled"))
	_, ok := ch.next()
	assert.False(t, ok)
	assert.Equal(t, Failed, ch.state)
	assert.Empty(t, ch.attempts)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "in_flight", InFlight.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
}
