package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond

	tests := []struct {
		name       string
		attempt    int
		base       time.Duration
		expectZero bool
		min, max   time.Duration
	}{
		{name: "attempt 0", attempt: 0, base: base, expectZero: true},
		{name: "attempt 1", attempt: 1, base: base, expectZero: true},
		{name: "negative attempt", attempt: -1, base: base, expectZero: true},
		{name: "zero base", attempt: 3, base: 0, expectZero: true},
		{name: "attempt 2", attempt: 2, base: base, min: 100 * time.Millisecond, max: 300 * time.Millisecond},
		{name: "attempt 3", attempt: 3, base: base, min: 200 * time.Millisecond, max: 600 * time.Millisecond},
		{name: "attempt 5", attempt: 5, base: base, min: 800 * time.Millisecond, max: 2400 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				delay := CalculateRetryDelay(tt.attempt, tt.base)
				if tt.expectZero {
					assert.Equal(t, time.Duration(0), delay)
					continue
				}
				assert.GreaterOrEqual(t, delay, tt.min)
				assert.LessOrEqual(t, delay, tt.max)
			}
		})
	}
}
