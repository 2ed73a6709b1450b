package backoff

import (
	"math"
	"math/rand"
	"time"
)

// CalculateRetryDelay returns 2^(attempt-1) * base with +/-50% jitter. The
// first attempt has no delay.
func CalculateRetryDelay(attempt int, baseRetryDelay time.Duration) time.Duration {
	if attempt <= 1 || baseRetryDelay <= 0 {
		return 0
	}

	base := time.Duration(math.Pow(2, float64(attempt-1))) * baseRetryDelay

	jitterRange := float64(base) * 0.5
	jitter := time.Duration(rand.Float64()*2*jitterRange - jitterRange)

	delay := base + jitter
	if delay < 0 {
		return 0
	}
	return delay
}
