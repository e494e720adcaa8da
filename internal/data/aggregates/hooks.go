package aggregates

import "time"

// Hooks receives aggregate operation telemetry. Implementations must be
// cheap and non-blocking.
type Hooks interface {
	ObserveOperation(op string, outcome string, d time.Duration)
	IncConflict(op string)
	IncRetry(op string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}

// NoopHooks is the default when no observability sink is wired.
func NoopHooks() Hooks { return noopHooks{} }
