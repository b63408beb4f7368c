package rig

import (
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(now time.Duration) Sample

func (f SourceFunc) Sample(now time.Duration) Sample {
	return f(now)
}

// Keyframe pins a sample to a point in time.
type Keyframe struct {
	At     time.Duration
	Sample Sample
}

// Scripted replays a timeline of keyframes. Poses and analog values are
// interpolated between neighbouring keyframes; flat move and jump input hold
// the value of the earlier keyframe. Before the first keyframe and after the
// last one the nearest keyframe is held.
type Scripted struct {
	frames []Keyframe
}

// NewScripted creates a scripted source. Keyframes may be given in any order.
func NewScripted(frames ...Keyframe) *Scripted {
	sorted := append([]Keyframe(nil), frames...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Scripted{frames: sorted}
}

// Duration returns the time of the last keyframe.
func (s *Scripted) Duration() time.Duration {
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[len(s.frames)-1].At
}

func (s *Scripted) Sample(now time.Duration) Sample {
	n := len(s.frames)
	switch {
	case n == 0:
		return Sample{
			Head:  NewPose(mgl64.Vec3{}),
			Hands: [2]HandSample{{Pose: NewPose(mgl64.Vec3{})}, {Pose: NewPose(mgl64.Vec3{})}},
		}
	case now <= s.frames[0].At:
		return s.frames[0].Sample
	case now >= s.frames[n-1].At:
		return s.frames[n-1].Sample
	}

	i := sort.Search(n, func(i int) bool { return s.frames[i].At > now })
	a, b := s.frames[i-1], s.frames[i]
	t := float64(now-a.At) / float64(b.At-a.At)

	out := a.Sample
	out.Head = lerpPose(a.Sample.Head, b.Sample.Head, t)
	for _, side := range Sides {
		ha, hb := a.Sample.Hands[side], b.Sample.Hands[side]
		out.Hands[side] = HandSample{
			Pose:    lerpPose(ha.Pose, hb.Pose, t),
			Grip:    ha.Grip + (hb.Grip-ha.Grip)*t,
			Trigger: ha.Trigger + (hb.Trigger-ha.Trigger)*t,
		}
	}
	return out
}

func lerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Position: a.Position.Add(b.Position.Sub(a.Position).Mul(t)),
		Rotation: mgl64.QuatSlerp(a.Rotation, b.Rotation, t),
	}
}
