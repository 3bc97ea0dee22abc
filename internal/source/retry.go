package source

import (
	"math/rand"
	"time"
)

// Backoff computes exponentially growing delays with jitter.
type Backoff struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       float64
}

// NewBackoff returns a doubling backoff with ±10% jitter.
func NewBackoff(initial, max time.Duration) *Backoff {
	return &Backoff{
		InitialDelay: initial,
		MaxDelay:     max,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// NextDelay returns the wait before retry number attempt (0-based).
func (b *Backoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return b.InitialDelay
	}

	delay := float64(b.InitialDelay)
	for i := 0; i < attempt; i++ {
		delay *= b.Multiplier
		if b.MaxDelay > 0 && delay > float64(b.MaxDelay) {
			delay = float64(b.MaxDelay)
			break
		}
	}

	delay += delay * b.Jitter * (2*rand.Float64() - 1)
	if b.MaxDelay > 0 && delay > float64(b.MaxDelay) {
		delay = float64(b.MaxDelay)
	}
	return time.Duration(delay)
}
