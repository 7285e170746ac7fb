package breaker

import (
	"fmt"
	"time"
)

type config struct {
	openTimeout     time.Duration
	halfOpenTimeout time.Duration
	minFailures     int
	ratioThreshold  int
	condition       Condition
	clock           Clock

	onStateChange OnStateChangeFunc
	onCall        OnCallFunc
	onReject      OnRejectFunc
}

func (c *config) validate() error {
	if c.openTimeout <= 0 {
		return fmt.Errorf("%w: open timeout %v", ErrInvalidTimeout, c.openTimeout)
	}
	if c.halfOpenTimeout <= 0 {
		return fmt.Errorf("%w: half-open timeout %v", ErrInvalidTimeout, c.halfOpenTimeout)
	}
	if c.minFailures < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinFailures, c.minFailures)
	}
	if c.ratioThreshold <= 0 || c.ratioThreshold > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidRatioThreshold, c.ratioThreshold)
	}
	return nil
}

// Option configures a Circuit.
type Option func(*config)

// WithOpenTimeout sets how long the circuit stays open before a probe call
// is admitted. Default is 5 seconds.
func WithOpenTimeout(d time.Duration) Option {
	return func(c *config) {
		c.openTimeout = d
	}
}

// WithHalfOpenTimeout sets the length of the half-open evidence window
// during which outcomes are accumulated. Default is 10 seconds.
func WithHalfOpenTimeout(d time.Duration) Option {
	return func(c *config) {
		c.halfOpenTimeout = d
	}
}

// WithMinFailures sets the minimum failure count within the half-open
// window before the circuit can open. Default is 15.
func WithMinFailures(n int) Option {
	return func(c *config) {
		c.minFailures = n
	}
}

// WithFailureRatioThreshold sets the percentage of failures among half-open
// observations required to open the circuit. Must be in (0, 100].
// Default is 50.
func WithFailureRatioThreshold(pct int) Option {
	return func(c *config) {
		c.ratioThreshold = pct
	}
}

// If sets the condition that determines whether an error counts as a failure.
// By default, any non-nil error is a failure.
func If(cond Condition) Option {
	return func(c *config) {
		c.condition = cond
	}
}

// IfNot sets a condition where matching errors are NOT counted as failures.
// This is equivalent to If(Not(cond)).
func IfNot(cond Condition) Option {
	return If(Not(cond))
}

// Not inverts a condition.
func Not(cond Condition) Condition {
	return func(err error) bool {
		return !cond(err)
	}
}

// WithClock sets the clock for time operations. Useful for testing.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// OnStateChange sets a hook called when the circuit changes state.
func OnStateChange(fn OnStateChangeFunc) Option {
	return func(c *config) {
		c.onStateChange = fn
	}
}

// OnCall sets a hook called after each call attempt.
func OnCall(fn OnCallFunc) Option {
	return func(c *config) {
		c.onCall = fn
	}
}

// OnReject sets a hook called when a call is rejected due to open circuit.
func OnReject(fn OnRejectFunc) Option {
	return func(c *config) {
		c.onReject = fn
	}
}
