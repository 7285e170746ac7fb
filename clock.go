package breaker

import "time"

// Clock supplies the current time for window deadlines.
// Inject a fake clock with WithClock to control time in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
