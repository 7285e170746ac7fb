// Package breaker implements a call-admission circuit breaker for unreliable
// remote operations.
//
// breaker protects callers from hammering a failing dependency by:
//
//   - Tracking Outcomes: failures and successes are tallied per window
//   - Ratio Tripping: the circuit opens once enough failures accumulate and
//     the failure ratio crosses a threshold
//   - Fast Rejection: open circuits reject calls immediately without load
//   - Probe Recovery: after the open window a single outcome decides whether
//     to resume gathering evidence
//   - Lifecycle Hooks: OnStateChange, OnCall, OnReject for observability
//
// # Quick Start
//
// Create a circuit and protect calls:
//
//	circuit, err := breaker.New("payment-service")
//	if err != nil {
//	    return err
//	}
//
//	err = circuit.Do(ctx, func(ctx context.Context) error {
//	    return client.Charge(ctx, amount)
//	})
//	if breaker.IsOpen(err) {
//	    return handleFallback()
//	}
//
// For functions that return values, use the generic Run helper:
//
//	user, err := breaker.Run(ctx, circuit, func(ctx context.Context) (*User, error) {
//	    return client.GetUser(ctx, id)
//	})
//
// # Circuit States
//
// The circuit breaker has three states:
//
//	Closed (normal):
//	    - Requests flow through to the protected function
//	    - The first failure moves the circuit to half-open and starts an
//	      evidence window
//
//	HalfOpen (gathering evidence):
//	    - Requests still flow through; outcomes are counted
//	    - Once failures reach the minimum and the failure ratio crosses the
//	      threshold, the circuit opens
//	    - If the window elapses without a decision, a success closes the
//	      circuit and a failure starts a fresh window
//
//	Open (tripped):
//	    - Requests are rejected immediately with ErrOpen
//	    - After the open timeout one probe call is admitted: success moves
//	      the circuit back to half-open, failure restarts the open window
//
// Note that unlike consecutive-failure breakers, a single failure never
// trips the circuit directly: it only starts the half-open evidence window.
//
// # Configuration
//
// Configure thresholds and timing with options:
//
//	circuit, err := breaker.New("api",
//	    breaker.WithOpenTimeout(5*time.Second),        // Wait 5s before probing
//	    breaker.WithHalfOpenTimeout(10*time.Second),   // 10s evidence window
//	    breaker.WithMinFailures(15),                   // At least 15 failures
//	    breaker.WithFailureRatioThreshold(50),         // 50% failures to open
//	)
//
// Default values:
//
//   - OpenTimeout: 5 seconds
//   - HalfOpenTimeout: 10 seconds
//   - MinFailures: 15
//   - FailureRatioThreshold: 50 percent
//
// New validates the configuration and returns an error for non-positive
// timeouts, a minimum below 1, or a ratio outside (0, 100].
//
// # Failure Conditions
//
// By default, any non-nil error counts as a failure. Customize this with If:
//
//	// Only count specific errors as failures
//	circuit, err := breaker.New("api",
//	    breaker.If(func(err error) bool {
//	        return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable)
//	    }),
//	)
//
// Use IfNot to exclude certain errors:
//
//	// Don't count 404s as failures
//	circuit, err := breaker.New("api",
//	    breaker.IfNot(func(err error) bool {
//	        return errors.Is(err, ErrNotFound)
//	    }),
//	)
//
// # Lifecycle Hooks
//
// Hooks provide observability without coupling to a specific logger or
// metrics system:
//
//	circuit, err := breaker.New("service",
//	    breaker.OnStateChange(func(name string, from, to breaker.State) {
//	        logger.Info("circuit state change",
//	            "circuit", name,
//	            "from", from,
//	            "to", to,
//	        )
//	    }),
//	    breaker.OnReject(func(name string) {
//	        logger.Warn("call rejected", "circuit", name)
//	    }),
//	)
//
// Available hooks:
//
//   - OnStateChange: Called when circuit transitions between states
//   - OnCall: Called after each call attempt (success or failure)
//   - OnReject: Called when a call is rejected due to open circuit
//
// # Fallback Pattern
//
// Use IsOpen to detect open circuits and provide fallback behavior:
//
//	func GetUser(ctx context.Context, id string) (*User, error) {
//	    user, err := breaker.Run(ctx, circuit, func(ctx context.Context) (*User, error) {
//	        return client.GetUser(ctx, id)
//	    })
//	    if breaker.IsOpen(err) {
//	        return getCachedUser(id)  // Fallback to cache
//	    }
//	    return user, err
//	}
//
// # Inspecting State
//
// Query the circuit's current status:
//
//	status := circuit.Status()  // State plus window deadlines
//	state := circuit.State()    // Closed, Open, or HalfOpen
//	failures, successes := circuit.Counts()
//
// Status exposes OpenUntil and HalfOpenUntil so callers can log when the
// next probe or decision is due; the deadlines are zero outside the state
// they belong to.
//
// # Testing
//
// Inject a fake clock to control time in tests:
//
//	type fakeClock struct {
//	    now time.Time
//	}
//
//	func (c *fakeClock) Now() time.Time { return c.now }
//	func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
//
//	func TestProbeAdmittedAfterOpenTimeout(t *testing.T) {
//	    clock := &fakeClock{now: time.Now()}
//	    circuit, err := breaker.New("test",
//	        breaker.WithMinFailures(1),
//	        breaker.WithOpenTimeout(5*time.Second),
//	        breaker.WithClock(clock),
//	    )
//	    ...
//	    clock.Advance(6 * time.Second)
//	    ...
//	}
//
// # Scope
//
// A Circuit guards exactly one logical operation and holds its state in
// process memory: there is no cross-process sharing, no persistence across
// restarts, and no per-key partitioning. Create one Circuit per guarded
// operation. The breaker never retries and never imposes a call timeout;
// both are the caller's concern.
package breaker
