package locomotion

import (
	"time"

	"github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Mode summarises hand contact after a frame.
type Mode int

const (
	Idle Mode = iota
	OneHandContact
	TwoHandContact
	Disabled
)

func (m Mode) String() string {
	switch m {
	case OneHandContact:
		return "one_hand"
	case TwoHandContact:
		return "two_hands"
	case Disabled:
		return "disabled"
	}
	return "idle"
}

// Frame is everything a strategy consumes for one step.
type Frame struct {
	Now   time.Duration
	DT    float64 // Seconds since the previous frame
	Input rig.Frame

	// Hand velocity relative to the head, per side.
	RelativeVelocity [2]mgl64.Vec3

	Alive bool
}

// Result is what a strategy reports after a step.
type Result struct {
	Mode      Mode
	Touching  [2]bool
	Followers [2]mgl64.Vec3 // Where hands are drawn: the resolved hand positions
	Head      mgl64.Vec3    // World head position after the step
	BodyDelta mgl64.Vec3    // Displacement applied to the body this frame
	Events    []Event
}

// AttackState exposes the flags the melee gate reads.
type AttackState struct {
	IsDashing             bool
	DashSide              rig.Side
	DashCooldownRemaining time.Duration
	IsGroundPounding      bool
	HitboxScale           [2]float64
	Tint                  [2]Tint
}

// Strategy moves a body from one frame of input.
type Strategy interface {
	ResolveFrame(f Frame) Result
	Body() *Body
	Attack() AttackState
	ApplyImpulse(v mgl64.Vec3)
	RespawnTo(position mgl64.Vec3)
	Turn(degrees float64)
}

var _ Strategy = (*Locomotion)(nil)

// Locomotion is the arm-swing strategy.
type Locomotion struct {
	cfg      config.LocomotionConfig
	dashCfg  config.DashConfig
	resolver *Resolver
	probe    *Probe

	body    *Body
	hands   [2]*HandKinematic
	history *VelocityHistory
	dash    *Dash

	primed       bool
	lastHead     mgl64.Vec3
	lastPosition mgl64.Vec3
	headLocal    mgl64.Vec3
	handsLocal   [2]rig.Pose
	now          time.Duration

	groundPounding bool
}

// New creates an arm-swing strategy for body.
func New(cfg config.LocomotionConfig, dashCfg config.DashConfig, resolver *Resolver, body *Body) *Locomotion {
	l := &Locomotion{
		cfg:      cfg,
		dashCfg:  dashCfg,
		resolver: resolver,
		probe:    resolver.Probe(),
		body:     body,
		history:  NewVelocityHistory(cfg.VelocityHistorySize),
		dash:     NewDash(dashCfg),
	}
	l.hands[rig.Left] = &HandKinematic{Offset: mgl64.Vec3(cfg.LeftHandOffset)}
	l.hands[rig.Right] = &HandKinematic{Offset: mgl64.Vec3(cfg.RightHandOffset)}
	l.handsLocal = [2]rig.Pose{rig.NewPose(mgl64.Vec3{}), rig.NewPose(mgl64.Vec3{})}
	l.lastPosition = body.Position
	return l
}

// ResolveFrame runs one locomotion step. Left hand, right hand, combination,
// head clearance, body displacement, final hand positions, velocity history,
// launch and unstick run in that order; each reads what the previous one
// wrote.
func (l *Locomotion) ResolveFrame(f Frame) Result {
	l.now = f.Now
	// A pose that fails validation keeps last frame's value, so its delta is zero.
	if f.Input.Head.Validate() == nil {
		l.headLocal = f.Input.Head.Position
	}
	for _, side := range rig.Sides {
		if pose := f.Input.Hands[side].Pose; pose.Validate() == nil {
			l.handsLocal[side] = pose
		}
	}
	if !(f.DT >= 0) {
		f.DT = 0
	}
	if !l.primed {
		l.anchor()
		l.primed = true
	}
	if !f.Alive {
		return l.disabled()
	}

	var events []Event
	triggers := [2]bool{f.Input.Hands[rig.Left].Trigger.Pressed, f.Input.Hands[rig.Right].Trigger.Pressed}
	dashImpulse, dashEvents := l.dash.Update(f.Now, triggers, f.RelativeVelocity)
	events = append(events, dashEvents...)
	if !gamemath.IsZero(dashImpulse) {
		l.body.Velocity = mgl64.Vec3{}
	}

	precision := l.cfg.DefaultPrecision
	r := l.cfg.HandRadius
	dt := f.DT
	bias := gamemath.Down.Mul(l.cfg.SwingGravityBias * l.cfg.Gravity * dt * dt)

	// First pass: where each hand wants to hold the body.
	var colliding [2]bool
	var pull [2]mgl64.Vec3
	head := l.head()
	for _, side := range rig.Sides {
		h := l.hands[side]
		h.Current = l.socket(side, head)
		delta := h.Current.Sub(h.LastResolved).Add(bias)
		end, hit := l.resolver.Resolve(h.LastResolved, r, delta, precision, true)
		if !hit {
			continue
		}
		if h.WasTouching {
			pull[side] = h.LastResolved.Sub(h.Current)
		} else {
			pull[side] = end.Sub(h.Current)
		}
		l.body.Velocity = mgl64.Vec3{}
		colliding[side] = true
	}

	var move mgl64.Vec3
	if l.anchored(colliding) {
		move = pull[rig.Left].Add(pull[rig.Right]).Mul(0.5)
	} else {
		move = pull[rig.Left].Add(pull[rig.Right])
	}

	// The head must be able to follow the body.
	headDelta := head.Add(move).Sub(l.lastHead)
	if end, hit := l.resolver.Resolve(l.lastHead, l.cfg.HeadRadius, headDelta, precision, false); hit {
		// Relative to this frame's head, not lastHead: the head's own
		// tracked motion is already in head, and measuring from lastHead
		// would add it on top of the clamped end.
		move = end.Sub(head)
		guard := end.Sub(l.lastHead)
		if _, blocked := l.probe.Ray(l.lastHead, guard, guard.Len()+l.cfg.HeadRadius*precision*0.999); blocked {
			move = l.lastHead.Sub(head)
		}
	}
	if !gamemath.IsFinite(move) {
		move = mgl64.Vec3{}
	}
	if !gamemath.IsZero(move) {
		l.body.Position = l.body.Position.Add(move)
	}
	head = l.head()
	l.lastHead = head

	// Second pass: where each hand is drawn, from its own motion only.
	for _, side := range rig.Sides {
		h := l.hands[side]
		h.Current = l.socket(side, head)
		delta := h.Current.Sub(h.LastResolved)
		if end, hit := l.resolver.Resolve(h.LastResolved, r, delta, precision, !l.anchored(colliding)); hit {
			h.LastResolved = end
			colliding[side] = true
		} else {
			h.LastResolved = h.Current
		}
	}

	average := l.recordVelocity(dt)
	if (colliding[rig.Left] || colliding[rig.Right]) && average.Len() > l.cfg.VelocityLimit {
		l.body.Velocity = LaunchVelocity(average, l.cfg.JumpMultiplier, l.cfg.MaxJumpSpeed)
		events = append(events, Launched{Velocity: l.body.Velocity})
	}

	for _, side := range rig.Sides {
		if colliding[side] && l.shouldUnstick(side, head) {
			l.hands[side].LastResolved = l.hands[side].Current
			colliding[side] = false
		}
	}

	if !gamemath.IsZero(dashImpulse) {
		l.body.Velocity = l.body.Velocity.Add(dashImpulse)
	}
	events = append(events, l.updateGroundPound(triggers, colliding)...)

	for _, side := range rig.Sides {
		if colliding[side] != l.hands[side].WasTouching {
			events = append(events, HandContact{Side: side, Touching: colliding[side]})
		}
		l.hands[side].WasTouching = colliding[side]
	}

	return Result{
		Mode:      contactMode(colliding),
		Touching:  colliding,
		Followers: l.followers(),
		Head:      head,
		BodyDelta: move,
		Events:    events,
	}
}

// disabled re-anchors every tracked point to where it is now and leaves the
// body alone.
func (l *Locomotion) disabled() Result {
	events := l.dash.Cancel()
	l.groundPounding = false
	l.anchor()
	return Result{
		Mode:      Disabled,
		Followers: l.followers(),
		Head:      l.lastHead,
		Events:    events,
	}
}

func (l *Locomotion) anchor() {
	head := l.head()
	for _, side := range rig.Sides {
		h := l.hands[side]
		h.Current = l.socket(side, head)
		h.LastResolved = h.Current
		h.WasTouching = false
	}
	l.lastHead = head
	l.lastPosition = l.body.Position
}

// anchored reports whether both hands hold (or held) a surface.
func (l *Locomotion) anchored(colliding [2]bool) bool {
	left := colliding[rig.Left] || l.hands[rig.Left].WasTouching
	right := colliding[rig.Right] || l.hands[rig.Right].WasTouching
	return left && right
}

func (l *Locomotion) recordVelocity(dt float64) mgl64.Vec3 {
	var v mgl64.Vec3
	if dt > 0 {
		v = l.body.Position.Sub(l.lastPosition).Mul(1 / dt)
	}
	l.lastPosition = l.body.Position
	return l.history.Record(v)
}

// shouldUnstick releases a hand that has drifted past UnstickDistance from
// where it is held, as long as the head can see the tracked hand.
func (l *Locomotion) shouldUnstick(side rig.Side, head mgl64.Vec3) bool {
	h := l.hands[side]
	if h.Current.Sub(h.LastResolved).Len() <= l.cfg.UnstickDistance {
		return false
	}
	toHand := h.Current.Sub(head)
	length := toHand.Len() - l.cfg.HandRadius
	_, blocked := l.probe.Sphere(head, l.cfg.HandRadius*l.cfg.DefaultPrecision, toHand, length)
	return !blocked
}

func (l *Locomotion) updateGroundPound(triggers [2]bool, colliding [2]bool) []Event {
	touching := colliding[rig.Left] || colliding[rig.Right]
	falling := -l.body.Velocity.Y() > l.dashCfg.GroundPoundSpeed
	switch {
	case touching || !(triggers[rig.Left] && triggers[rig.Right]):
		l.groundPounding = false
	case falling && !l.groundPounding:
		l.groundPounding = true
		return []Event{GroundPoundStarted{}}
	}
	return nil
}

func (l *Locomotion) head() mgl64.Vec3 {
	return l.body.ToWorld(l.headLocal)
}

// socket returns the reach-constrained world socket of a hand.
func (l *Locomotion) socket(side rig.Side, head mgl64.Vec3) mgl64.Vec3 {
	world := l.body.PoseToWorld(l.handsLocal[side])
	return ConstrainReach(l.hands[side].Socket(world), head, l.cfg.MaxArmLength)
}

func (l *Locomotion) followers() [2]mgl64.Vec3 {
	return [2]mgl64.Vec3{l.hands[rig.Left].LastResolved, l.hands[rig.Right].LastResolved}
}

func contactMode(colliding [2]bool) Mode {
	switch {
	case colliding[rig.Left] && colliding[rig.Right]:
		return TwoHandContact
	case colliding[rig.Left] || colliding[rig.Right]:
		return OneHandContact
	}
	return Idle
}

// Body returns the body this strategy moves.
func (l *Locomotion) Body() *Body {
	return l.body
}

// Hand returns the kinematic state of one hand.
func (l *Locomotion) Hand(side rig.Side) *HandKinematic {
	return l.hands[side]
}

// History returns the velocity history.
func (l *Locomotion) History() *VelocityHistory {
	return l.history
}

// IsHandTouching reports whether a hand ended the last frame in contact.
func (l *Locomotion) IsHandTouching(side rig.Side) bool {
	return l.hands[side].WasTouching
}

// Attack returns the dash and ground pound flags.
func (l *Locomotion) Attack() AttackState {
	return AttackState{
		IsDashing:             l.dash.IsDashing(),
		DashSide:              l.dash.Side(),
		DashCooldownRemaining: l.dash.CooldownRemaining(l.now),
		IsGroundPounding:      l.groundPounding,
		HitboxScale:           [2]float64{l.dash.HitboxScale(rig.Left), l.dash.HitboxScale(rig.Right)},
		Tint:                  [2]Tint{l.dash.Tint(rig.Left), l.dash.Tint(rig.Right)},
	}
}

// Dash returns the dash sub-state.
func (l *Locomotion) Dash() *Dash {
	return l.dash
}

// Turn rotates the body about the head and turns the velocity history with
// it.
func (l *Locomotion) Turn(degrees float64) {
	q := gamemath.YawRotation(degrees)
	head := l.head()
	l.body.Position = gamemath.RotateAround(l.body.Position, head, q)
	l.body.Yaw += degrees
	l.history.Rotate(q)
}

// RespawnTo moves the body and drops all held state.
func (l *Locomotion) RespawnTo(position mgl64.Vec3) {
	l.body.Position = position
	l.body.Velocity = mgl64.Vec3{}
	l.history.Reset()
	l.groundPounding = false
	l.anchor()
}

// ApplyImpulse adds v to the body velocity.
func (l *Locomotion) ApplyImpulse(v mgl64.Vec3) {
	if gamemath.IsFinite(v) {
		l.body.Velocity = l.body.Velocity.Add(v)
	}
}
