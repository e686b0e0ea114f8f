package sim

import (
	"context"
	"errors"
	"sync"

	"github.com/xtding233/qrng-backend/internal/circuit"
)

// ErrScriptExhausted is returned when a Scripted backend runs out of
// queued outcomes.
var ErrScriptExhausted = errors.New("scripted backend: no outcomes left")

// Scripted replays queued outcomes in order, regardless of the circuit
// it is given. It stands in for the simulator wherever a test needs
// exact, repeatable measurement results.
type Scripted struct {
	mu    sync.Mutex
	queue []Outcome
	calls int
}

// NewScripted queues outcomes for replay.
func NewScripted(outcomes ...Outcome) *Scripted {
	return &Scripted{queue: outcomes}
}

// Execute pops the next queued outcome.
func (s *Scripted) Execute(ctx context.Context, spec *circuit.Spec, shots int) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.queue) == 0 {
		return Outcome{}, ErrScriptExhausted
	}
	out := s.queue[0]
	s.queue = s.queue[1:]
	return out, nil
}

// Calls reports how many executions were requested.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
