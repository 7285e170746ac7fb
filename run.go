package breaker

import "context"

// Run executes fn and returns its typed result with circuit breaker
// protection. It is a convenience wrapper for guarded operations that return
// a value; a rejected call returns the zero value and ErrOpen.
func Run[T any](ctx context.Context, c *Circuit, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := c.Do(ctx, func(ctx context.Context) error {
		var fnErr error
		result, fnErr = fn(ctx)
		return fnErr
	})
	return result, err
}
