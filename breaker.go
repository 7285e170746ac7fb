package breaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// Closed is the normal operating state. Requests flow through.
	Closed State = iota

	// Open is the tripped state. Requests are rejected immediately.
	Open

	// HalfOpen is the evidence-gathering state. Requests flow through while
	// outcomes are tallied against the failure ratio threshold.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Func is the function signature for protected operations.
type Func func(ctx context.Context) error

// Condition determines whether an error should count as a failure.
type Condition func(error) bool

// OnStateChangeFunc is called when the circuit changes state.
type OnStateChangeFunc func(name string, from, to State)

// OnCallFunc is called after each call attempt.
type OnCallFunc func(name string, state State, err error)

// OnRejectFunc is called when a call is rejected due to open circuit.
type OnRejectFunc func(name string)

// ErrOpen is returned when the circuit is open and rejecting requests.
var ErrOpen = errors.New("circuit open")

// IsOpen reports whether err is because the circuit is open.
func IsOpen(err error) bool {
	return errors.Is(err, ErrOpen)
}

// Configuration errors returned by New.
var (
	ErrInvalidTimeout        = errors.New("breaker: timeout must be positive")
	ErrInvalidMinFailures    = errors.New("breaker: min failures must be at least 1")
	ErrInvalidRatioThreshold = errors.New("breaker: failure ratio threshold must be in (0, 100]")
)

// Default values.
const (
	DefaultOpenTimeout           = 5 * time.Second
	DefaultHalfOpenTimeout       = 10 * time.Second
	DefaultMinFailures           = 15
	DefaultFailureRatioThreshold = 50
)

// Status is a read-only snapshot of the circuit for introspection.
// OpenUntil is set only while the state is Open; HalfOpenUntil only while
// the state is HalfOpen.
type Status struct {
	State         State
	OpenUntil     time.Time
	HalfOpenUntil time.Time
}

// Circuit is a circuit breaker. Safe for concurrent use.
type Circuit struct {
	name string
	cfg  config

	mu sync.Mutex
	m  machine
}

// New creates a Circuit with the given options. It returns an error if the
// configuration is invalid, so a misconfigured breaker fails at construction
// rather than misbehaving later.
func New(name string, opts ...Option) (*Circuit, error) {
	cfg := config{
		openTimeout:     DefaultOpenTimeout,
		halfOpenTimeout: DefaultHalfOpenTimeout,
		minFailures:     DefaultMinFailures,
		ratioThreshold:  DefaultFailureRatioThreshold,
		condition:       defaultCondition,
		clock:           realClock{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Circuit{
		name: name,
		cfg:  cfg,
		m: machine{
			openTimeout:     cfg.openTimeout,
			halfOpenTimeout: cfg.halfOpenTimeout,
			minFailures:     cfg.minFailures,
			ratioThreshold:  cfg.ratioThreshold,
			state:           Closed,
		},
	}, nil
}

// Do executes fn with circuit breaker protection. While the circuit is open
// and its deadline has not passed, fn is never invoked and Do returns
// ErrOpen. Otherwise fn runs, its outcome is recorded, and its error is
// returned unchanged.
func (c *Circuit) Do(ctx context.Context, fn Func) error {
	state, err := c.allow()
	if err != nil {
		if c.cfg.onReject != nil {
			c.cfg.onReject(c.name)
		}
		return err
	}

	fnErr := fn(ctx)

	c.record(fnErr)

	if c.cfg.onCall != nil {
		c.cfg.onCall(c.name, state, fnErr)
	}

	return fnErr
}

// State returns the current state.
func (c *Circuit) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m.state
}

// Status returns a snapshot of the current state and window deadlines.
func (c *Circuit) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:         c.m.state,
		OpenUntil:     c.m.openUntil,
		HalfOpenUntil: c.m.halfOpenUntil,
	}
}

// Reset manually resets the circuit to closed state.
func (c *Circuit) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.m.state
	if from == Closed {
		return
	}
	c.m.enter(Closed, c.cfg.clock.Now())

	if c.cfg.onStateChange != nil {
		c.cfg.onStateChange(c.name, from, Closed)
	}
}

// Name returns the circuit name.
func (c *Circuit) Name() string {
	return c.name
}

// Counts returns the failure and success tallies for the current window.
func (c *Circuit) Counts() (failures, successes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m.failures, c.m.successes
}

func (c *Circuit) allow() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.m.admits(c.cfg.clock.Now()) {
		return c.m.state, ErrOpen
	}
	return c.m.state, nil
}

func (c *Circuit) record(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cfg.clock.Now()
	from := c.m.state

	var to State
	if c.cfg.condition(err) {
		to = c.m.onFailure(now)
	} else {
		to = c.m.onSuccess(now)
	}

	if from != to && c.cfg.onStateChange != nil {
		c.cfg.onStateChange(c.name, from, to)
	}
}

func defaultCondition(err error) bool {
	return err != nil
}
