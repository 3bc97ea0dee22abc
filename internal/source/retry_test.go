package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffNextDelay(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, time.Second)

	assert.Equal(t, 100*time.Millisecond, b.NextDelay(0))

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
	}
	for _, tt := range tests {
		for i := 0; i < 20; i++ {
			d := b.NextDelay(tt.attempt)
			assert.GreaterOrEqual(t, d, tt.base*9/10, "attempt %d", tt.attempt)
			assert.LessOrEqual(t, d, tt.base*11/10, "attempt %d", tt.attempt)
		}
	}
}

func TestBackoffCapsAtMaxDelay(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, time.Second)
	for i := 0; i < 20; i++ {
		assert.LessOrEqual(t, b.NextDelay(10), time.Second)
	}
}

func TestBackoffWithoutJitter(t *testing.T) {
	b := &Backoff{InitialDelay: time.Second, Multiplier: 3}
	assert.Equal(t, 9*time.Second, b.NextDelay(2))
}
