package breaker

import "time"

// machine owns the admission state, the window deadlines, and the outcome
// counters. It is not synchronized; Circuit serializes all access.
type machine struct {
	openTimeout     time.Duration
	halfOpenTimeout time.Duration
	minFailures     int
	ratioThreshold  int

	state         State
	failures      int
	successes     int
	openUntil     time.Time
	halfOpenUntil time.Time
}

// admits reports whether a call may proceed at now. It never mutates state:
// an Open circuit whose deadline has passed admits a probe but stays Open
// until the probe's outcome is recorded.
func (m *machine) admits(now time.Time) bool {
	if m.state == Open {
		return !now.Before(m.openUntil)
	}
	return true
}

// onSuccess applies a success outcome observed at now and returns the
// resulting state.
func (m *machine) onSuccess(now time.Time) State {
	switch m.state {
	case Closed:
		m.successes++
	case HalfOpen:
		if now.Before(m.halfOpenUntil) {
			m.successes++
		} else {
			// Evidence window elapsed without tripping.
			m.enter(Closed, now)
		}
	case Open:
		// Probe succeeded: start gathering evidence.
		m.enter(HalfOpen, now)
	}
	return m.state
}

// onFailure applies a failure outcome observed at now and returns the
// resulting state. The triggering failure is counted before the minimum
// and ratio checks are evaluated.
func (m *machine) onFailure(now time.Time) State {
	switch m.state {
	case Closed:
		m.enter(HalfOpen, now)
		m.failures = 1
	case HalfOpen:
		if !now.Before(m.halfOpenUntil) {
			// Window elapsed without a decision; this failure opens a
			// fresh one rather than accumulating onto stale evidence.
			m.restartWindow(now)
			return m.state
		}
		m.failures++
		if m.failures < m.minFailures {
			return m.state
		}
		if m.failureRatio() >= m.ratioThreshold {
			m.enter(Open, now)
		} else {
			m.restartWindow(now)
		}
	case Open:
		// Probe failed: hold the circuit open for another full window.
		m.openUntil = now.Add(m.openTimeout)
	}
	return m.state
}

// enter transitions to a new state, resetting counters and setting the
// deadline the target state depends on. Deadlines for other states are
// cleared so they are never read stale.
func (m *machine) enter(to State, now time.Time) {
	m.failures = 0
	m.successes = 0
	m.openUntil = time.Time{}
	m.halfOpenUntil = time.Time{}

	switch to {
	case Open:
		m.openUntil = now.Add(m.openTimeout)
	case HalfOpen:
		m.halfOpenUntil = now.Add(m.halfOpenTimeout)
	}

	m.state = to
}

// restartWindow begins a fresh half-open evidence window seeded with the
// failure that triggered the restart.
func (m *machine) restartWindow(now time.Time) {
	m.failures = 1
	m.successes = 0
	m.halfOpenUntil = now.Add(m.halfOpenTimeout)
}

// failureRatio is the percentage of failures among outcomes observed in the
// current window. Only meaningful in HalfOpen with failures >= 1.
func (m *machine) failureRatio() int {
	return m.failures * 100 / (m.failures + m.successes)
}
