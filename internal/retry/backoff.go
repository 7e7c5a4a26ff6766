package retry

import "time"

// ExponentialBackoff returns the delay before retry number attempt,
// doubling from base and capped at max (no cap when max <= 0).
func ExponentialBackoff(attempt int, base, max time.Duration) time.Duration {
	d := base * (1 << attempt)
	if max > 0 && d > max {
		return max
	}
	return d
}
