package insight

import (
	"time"
)

type State int

const (
	Idle State = iota
	InFlight
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in_flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type Attempt struct {
	Model   string
	Elapsed time.Duration
	Err     error
}

// chain walks the candidate list strictly in order. It knows nothing about
// the network; Client feeds it outcomes.
type chain struct {
	candidates []string
	pos        int
	state      State

	attempts []Attempt
	lastErr  error
	model    string
	text     string
}

func newChain(candidates []string) *chain {
	return &chain{candidates: candidates, state: InFlight}
}

// next returns the candidate to try, or false once the chain has settled.
func (c *chain) next() (string, bool) {
	if c.state != InFlight || c.pos >= len(c.candidates) {
		return "", false
	}
	return c.candidates[c.pos], true
}

func (c *chain) succeed(text string, elapsed time.Duration) {
	model := c.candidates[c.pos]
	c.attempts = append(c.attempts, Attempt{Model: model, Elapsed: elapsed})
	c.model = model
	c.text = text
	c.state = Succeeded
}

func (c *chain) fail(err error, elapsed time.Duration) {
	c.attempts = append(c.attempts, Attempt{Model: c.candidates[c.pos], Elapsed: elapsed, Err: err})
	c.lastErr = err
	c.pos++
	if c.pos >= len(c.candidates) {
		c.state = Failed
	}
}

// abort settles the chain without trying the remaining candidates.
func (c *chain) abort(err error) {
	c.lastErr = err
	c.state = Failed
}
