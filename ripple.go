package showcase

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// rippleShaderSrc displaces the water region of the source image with a
// decaying sine ring centered on the last click. Ebitengine uses
// premultiplied alpha; mixing premultiplied samples is already correct.
const rippleShaderSrc = `//kage:unit pixels
package main

var Center vec2
var Size vec2
var Phase float
var Amplitude float
var WaterTop float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	base := imageSrc0At(src)
	if dst.y < WaterTop {
		return base
	}
	origin := imageSrc0Origin()
	uv := (src - origin) / Size
	d := length(uv - Center/Size)
	r := sin(d*30.0-Phase*5.0) * exp(-d*20.0) * Amplitude
	p := clamp(src+vec2(r)*Size, origin, origin+Size-vec2(1))
	return mix(base, imageSrc0At(p), 0.85)
}
`

// --- Lazy shader compilation (single-threaded, no sync.Once) ---

var rippleShader *ebiten.Shader

func ensureRippleShader() *ebiten.Shader {
	if rippleShader == nil {
		s, err := ebiten.NewShader([]byte(rippleShaderSrc))
		if err != nil {
			panic("showcase: failed to compile ripple shader: " + err.Error())
		}
		rippleShader = s
	}
	return rippleShader
}

// ripplePhaseRate is how fast the ring phase advances, in phase units per
// second. Three units per second reads well at the default lifetime.
const ripplePhaseRate = 3.0

// RippleLayer is the water surface effect. One ripple is live at a time; a
// new click restarts it at the new position.
type RippleLayer struct {
	cfg RippleConfig

	active bool
	x, y   float64
	start  time.Duration

	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewRippleLayer creates an idle ripple layer.
func NewRippleLayer(cfg RippleConfig) *RippleLayer {
	return &RippleLayer{cfg: cfg, uniforms: make(map[string]any, 5)}
}

// Trigger starts a ripple at viewport pixel (sx, sy). A disabled layer ignores
// it.
func (r *RippleLayer) Trigger(sx, sy float64, now time.Duration) {
	if !r.cfg.Enabled {
		return
	}
	r.active = true
	r.x, r.y = sx, sy
	r.start = now
}

// Phase returns the ripple phase at now, or 0 (and false) when no ripple is
// live. The layer goes idle once its lifetime has passed.
func (r *RippleLayer) Phase(now time.Duration) (float64, bool) {
	if !r.active {
		return 0, false
	}
	elapsed := now - r.start
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= r.cfg.Lifetime() {
		r.active = false
		return 0, false
	}
	return elapsed.Seconds() * ripplePhaseRate, true
}

// Center returns the position of the most recent ripple.
func (r *RippleLayer) Center() (float64, float64) { return r.x, r.y }

// Draw renders src into dst, distorting the water region while a ripple is
// live. src and dst must be the same size.
func (r *RippleLayer) Draw(dst, src *ebiten.Image, now time.Duration) {
	phase, live := r.Phase(now)
	if !live {
		dst.DrawImage(src, nil)
		return
	}
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	r.uniforms["Center"] = []float32{float32(r.x), float32(r.y)}
	r.uniforms["Size"] = []float32{float32(w), float32(h)}
	r.uniforms["Phase"] = float32(phase)
	r.uniforms["Amplitude"] = float32(r.cfg.Amplitude)
	r.uniforms["WaterTop"] = float32(r.cfg.WaterLevel * h)

	r.shaderOp.Images[0] = src
	r.shaderOp.Uniforms = r.uniforms
	dst.DrawRectShader(b.Dx(), b.Dy(), ensureRippleShader(), &r.shaderOp)
}
