package locomotion

import (
	"github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

var _ Strategy = (*Desktop)(nil)

// Desktop is the flat-input strategy: a planar move force and a jump that
// only works from the ground. Hands follow their tracked poses without
// collision.
type Desktop struct {
	cfg  config.DesktopConfig
	body *Body

	grounded   bool
	headLocal  mgl64.Vec3
	handsLocal [2]rig.Pose
}

// NewDesktop creates a desktop strategy for body.
func NewDesktop(cfg config.DesktopConfig, body *Body) *Desktop {
	return &Desktop{
		cfg:        cfg,
		body:       body,
		handsLocal: [2]rig.Pose{rig.NewPose(mgl64.Vec3{}), rig.NewPose(mgl64.Vec3{})},
	}
}

func (d *Desktop) ResolveFrame(f Frame) Result {
	if f.Input.Head.Validate() == nil {
		d.headLocal = f.Input.Head.Position
	}
	for _, side := range rig.Sides {
		if pose := f.Input.Hands[side].Pose; pose.Validate() == nil {
			d.handsLocal[side] = pose
		}
	}

	res := Result{Mode: Idle, Head: d.body.ToWorld(d.headLocal)}
	if !f.Alive {
		res.Mode = Disabled
		res.Followers = d.followers()
		return res
	}

	dt := f.DT
	if !(dt > 0) {
		dt = 0
	}
	move := mgl64.Vec3{f.Input.Move.X(), 0, f.Input.Move.Y()}.Mul(d.cfg.MoveSpeed)
	v := d.body.Velocity.Add(d.body.DirectionToWorld(move).Mul(dt))
	v = gamemath.ApplyDrag(v, d.cfg.Drag, dt)
	if f.Input.Jump.JustPressed && d.grounded {
		v = v.Add(gamemath.Up.Mul(d.cfg.JumpForce))
		d.grounded = false
	}
	d.body.Velocity = v

	res.Followers = d.followers()
	return res
}

func (d *Desktop) followers() [2]mgl64.Vec3 {
	return [2]mgl64.Vec3{
		d.body.ToWorld(d.handsLocal[rig.Left].Position),
		d.body.ToWorld(d.handsLocal[rig.Right].Position),
	}
}

// SetGrounded records whether the integrator left the body on the ground.
func (d *Desktop) SetGrounded(grounded bool) {
	d.grounded = grounded
}

// Grounded reports whether a jump is allowed.
func (d *Desktop) Grounded() bool {
	return d.grounded
}

func (d *Desktop) Body() *Body {
	return d.body
}

// Attack always reports a neutral state: there is no dash without tracked
// hands.
func (d *Desktop) Attack() AttackState {
	return AttackState{HitboxScale: [2]float64{1, 1}}
}

func (d *Desktop) ApplyImpulse(v mgl64.Vec3) {
	if gamemath.IsFinite(v) {
		d.body.Velocity = d.body.Velocity.Add(v)
	}
}

func (d *Desktop) RespawnTo(position mgl64.Vec3) {
	d.body.Position = position
	d.body.Velocity = mgl64.Vec3{}
	d.grounded = false
}

func (d *Desktop) Turn(degrees float64) {
	head := d.body.ToWorld(d.headLocal)
	d.body.Position = gamemath.RotateAround(d.body.Position, head, gamemath.YawRotation(degrees))
	d.body.Yaw += degrees
}
