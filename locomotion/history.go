package locomotion

import (
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// VelocityHistory is a ring of the last N body velocities with a running
// mean. The mean always divides by N: slots that were never written count as
// zero, so until N samples have been recorded the average is smaller than
// the mean of the samples seen so far.
type VelocityHistory struct {
	samples []mgl64.Vec3
	index   int
	average mgl64.Vec3
}

// NewVelocityHistory creates a ring of the given size (at least 1).
func NewVelocityHistory(size int) *VelocityHistory {
	if size < 1 {
		size = 1
	}
	return &VelocityHistory{samples: make([]mgl64.Vec3, size)}
}

// Record replaces the oldest sample with v and returns the new mean.
// Non-finite samples are stored as zero.
func (h *VelocityHistory) Record(v mgl64.Vec3) mgl64.Vec3 {
	if !gamemath.IsFinite(v) {
		v = mgl64.Vec3{}
	}
	n := len(h.samples)
	h.index = (h.index + 1) % n
	oldest := h.samples[h.index]
	h.average = h.average.Add(v.Sub(oldest).Mul(1 / float64(n)))
	h.samples[h.index] = v
	return h.average
}

// Average returns the running mean.
func (h *VelocityHistory) Average() mgl64.Vec3 {
	return h.average
}

// Size returns the ring capacity.
func (h *VelocityHistory) Size() int {
	return len(h.samples)
}

// Reset zeroes every sample and the mean.
func (h *VelocityHistory) Reset() {
	for i := range h.samples {
		h.samples[i] = mgl64.Vec3{}
	}
	h.index = 0
	h.average = mgl64.Vec3{}
}

// Rotate applies q to every sample and to the mean.
func (h *VelocityHistory) Rotate(q mgl64.Quat) {
	for i, s := range h.samples {
		h.samples[i] = q.Rotate(s)
	}
	h.average = q.Rotate(h.average)
}

// LaunchVelocity converts an averaged velocity into a push-off velocity:
// average*multiplier, clamped to maxSpeed along the same direction.
func LaunchVelocity(average mgl64.Vec3, multiplier, maxSpeed float64) mgl64.Vec3 {
	if average.Len()*multiplier > maxSpeed {
		return gamemath.SafeNormalize(average, mgl64.Vec3{}).Mul(maxSpeed)
	}
	return average.Mul(multiplier)
}
