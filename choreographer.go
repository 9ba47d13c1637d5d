package showcase

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ChoreoState is the camera choreographer's state.
type ChoreoState uint8

const (
	StateIdle      ChoreoState = iota // no transition in flight
	StateAnimating                    // a transition is being advanced
)

// String returns the lower-case state name.
func (s ChoreoState) String() string {
	if s == StateAnimating {
		return "animating"
	}
	return "idle"
}

// transition is the single in-flight camera move.
type transition struct {
	from, to Pose
	duration time.Duration

	started bool
	start   time.Duration

	tween    *gween.Tween
	progress float64
	onArrive func()
}

// Choreographer moves a camera between poses over time. It is the only writer
// of the camera pose while a Controller owns it.
//
// The choreographer has no clock of its own: a driver calls Advance once per
// frame with the current time.
type Choreographer struct {
	cam    *Camera
	easing ease.TweenFunc
	active *transition
}

// NewChoreographer creates an idle choreographer for cam with linear easing.
func NewChoreographer(cam *Camera) *Choreographer {
	if cam == nil {
		panic("showcase: choreographer needs a camera")
	}
	return &Choreographer{cam: cam, easing: ease.Linear}
}

// Camera returns the camera being driven.
func (c *Choreographer) Camera() *Camera { return c.cam }

// SetEasing replaces the easing used by later transitions. nil restores
// linear easing.
func (c *Choreographer) SetEasing(fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	c.easing = fn
}

// State reports whether a transition is in flight.
func (c *Choreographer) State() ChoreoState {
	if c.active != nil {
		return StateAnimating
	}
	return StateIdle
}

// Progress returns the eased progress of the active transition in [0, 1]
// (easings that overshoot may leave that range mid-flight), or 0 when idle.
func (c *Choreographer) Progress() float64 {
	if c.active == nil {
		return 0
	}
	return c.active.progress
}

// Target returns the destination of the active transition.
func (c *Choreographer) Target() (Pose, bool) {
	if c.active == nil {
		return Pose{}, false
	}
	return c.active.to, true
}

// PanTo starts a transition from the camera's current pose to target. The
// start time is taken from the next Advance call. onArrive (may be nil) runs
// once when the camera reaches target.
//
// Calling PanTo while animating abandons the old transition: its onArrive
// never runs and the new one starts from wherever the camera is now.
func (c *Choreographer) PanTo(target Pose, duration time.Duration, onArrive func()) {
	if duration < 0 {
		duration = 0
	}
	c.active = &transition{
		from:     c.cam.Pose(),
		to:       target,
		duration: duration,
		tween:    gween.New(0, 1, float32(duration.Seconds()), c.easing),
		onArrive: onArrive,
	}
}

// Advance moves the active transition to time now. It returns true while the
// camera is still animating and false once idle. On the tick that reaches the
// target the camera is placed exactly on it, the choreographer goes idle, and
// onArrive runs.
func (c *Choreographer) Advance(now time.Duration) bool {
	tr := c.active
	if tr == nil {
		return false
	}
	if !tr.started {
		tr.started = true
		tr.start = now
	}

	elapsed := now - tr.start
	if elapsed < 0 {
		elapsed = 0
	}
	val, finished := tr.tween.Set(float32(elapsed.Seconds()))
	if finished {
		tr.progress = 1
		c.cam.SetPose(tr.to)
		c.active = nil
		if tr.onArrive != nil {
			tr.onArrive()
		}
		return false
	}

	tr.progress = float64(val)
	c.cam.SetPose(lerpPose(tr.from, tr.to, tr.progress))
	return true
}

// maxPolar keeps an orbiting camera off the poles, where the view basis
// degenerates.
const maxPolar = math.Pi/2 - 0.01

// Orbit rotates the camera around its look-at point by yaw (about world Y)
// and pitch (toward or away from the poles), keeping the distance. It is
// ignored while a transition is in flight.
func (c *Choreographer) Orbit(yaw, pitch float64) {
	if c.active != nil {
		return
	}
	offset := c.cam.Position.Sub(c.cam.LookAt)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	azimuth := math.Atan2(offset[0], offset[2]) - yaw
	elevation := math.Asin(clamp(offset[1]/radius, -1, 1)) + pitch
	elevation = clamp(elevation, -maxPolar, maxPolar)

	cosE := math.Cos(elevation)
	offset = Vec3{
		radius * cosE * math.Sin(azimuth),
		radius * math.Sin(elevation),
		radius * cosE * math.Cos(azimuth),
	}
	c.cam.Position = c.cam.LookAt.Add(offset)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// lerpPose linearly interpolates position and look-at independently.
func lerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Position: a.Position.Add(b.Position.Sub(a.Position).Mul(t)),
		LookAt:   a.LookAt.Add(b.LookAt.Sub(a.LookAt).Mul(t)),
	}
}
