package metrics

import "time"

// DefaultCapacity is the default number of samples retained per series.
const DefaultCapacity = 60

// Sample is one timestamped value. An invalid Value is a gap, not zero.
type Sample struct {
	Time  time.Time
	Value Num
}

// At builds a Sample with a known value.
func At(t time.Time, v float64) Sample {
	return Sample{Time: t, Value: Some(v)}
}

// Gap builds a Sample with no usable value.
func Gap(t time.Time) Sample {
	return Sample{Time: t}
}

// SampleBuffer is a fixed-capacity circular buffer of samples.
// It has no locking of its own; callers serialize access.
type SampleBuffer struct {
	data  []Sample
	head  int
	count int
	size  int
}

// NewSampleBuffer creates a buffer with the given capacity.
func NewSampleBuffer(capacity int) *SampleBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SampleBuffer{
		data: make([]Sample, capacity),
		size: capacity,
	}
}

// Push appends a sample, evicting the oldest when full.
func (b *SampleBuffer) Push(s Sample) {
	b.data[b.head] = s
	b.head = (b.head + 1) % b.size
	if b.count < b.size {
		b.count++
	}
}

// ReplaceAll discards the current contents and loads samples, which must be
// in chronological order. Only the most recent Cap() samples are kept.
func (b *SampleBuffer) ReplaceAll(samples []Sample) {
	if len(samples) > b.size {
		samples = samples[len(samples)-b.size:]
	}
	clear(b.data)
	n := copy(b.data, samples)
	b.count = n
	b.head = n % b.size
}

// ToArray returns all samples in chronological order (oldest first).
func (b *SampleBuffer) ToArray() []Sample {
	return b.Last(b.count)
}

// Last returns the last n samples in chronological order.
func (b *SampleBuffer) Last(n int) []Sample {
	if n <= 0 || b.count == 0 {
		return nil
	}
	if n > b.count {
		n = b.count
	}

	out := make([]Sample, n)
	// head is the next write slot, so the newest sample sits at head-1
	start := (b.head - n + b.size) % b.size
	for i := 0; i < n; i++ {
		out[i] = b.data[(start+i)%b.size]
	}
	return out
}

// Latest returns the most recent sample.
func (b *SampleBuffer) Latest() (Sample, bool) {
	last := b.Last(1)
	if len(last) == 0 {
		return Sample{}, false
	}
	return last[0], true
}

// Len returns the number of stored samples.
func (b *SampleBuffer) Len() int {
	return b.count
}

// Cap returns the buffer capacity.
func (b *SampleBuffer) Cap() int {
	return b.size
}
