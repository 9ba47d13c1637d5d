package showcase

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Default wireframe colors per group, used when a node has no Color.
var (
	colorPickable   = Color{0.31, 0.76, 0.97, 1}
	colorOccluder   = Color{0.94, 0.33, 0.31, 1}
	colorDecorative = Color{0.6, 0.6, 0.6, 1}
)

// sphereSegments is the number of line segments per great circle.
const sphereSegments = 24

// Renderer draws the scene as a wireframe from a camera's point of view.
// Lighting and materials belong to a real renderer; this one exists so the
// demo and scripted runs have something to look at.
type Renderer struct {
	// LineWidth is the stroke width in pixels. Zero draws 1 px lines.
	LineWidth float32
	// Highlight names a target drawn with a thicker stroke.
	Highlight string

	segs [][2]Vec3 // reused edge buffer
}

// Draw renders every visible geometry node under root.
func (r *Renderer) Draw(dst *ebiten.Image, root *Node, cam *Camera) {
	if root == nil || cam == nil {
		return
	}
	vp := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	root.Walk(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Geometry != nil {
			r.drawNode(dst, n, vp.Mul4(n.WorldMatrix()), cam)
		}
		return true
	})
}

func (r *Renderer) drawNode(dst *ebiten.Image, n *Node, mvp mgl64.Mat4, cam *Camera) {
	r.segs = appendEdges(r.segs[:0], n.Geometry)

	width := r.LineWidth
	if width <= 0 {
		width = 1
	}
	if r.Highlight != "" && n.Name == r.Highlight {
		width *= 3
	}
	clr := nodeColor(n).toRGBA()

	for _, s := range r.segs {
		x0, y0, ok0 := projectPoint(mvp, s[0], cam)
		x1, y1, ok1 := projectPoint(mvp, s[1], cam)
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
	}
}

// appendEdges appends the local-space wireframe edges of g to buf.
func appendEdges(buf [][2]Vec3, g Geometry) [][2]Vec3 {
	switch geom := g.(type) {
	case Box:
		c := geom.Corners()
		// Corner index bits: 1 = X, 2 = Y, 4 = Z. Edges join corners that
		// differ in exactly one bit.
		for i := 0; i < 8; i++ {
			for _, bit := range []int{1, 2, 4} {
				if j := i | bit; j != i {
					buf = append(buf, [2]Vec3{c[i], c[j]})
				}
			}
		}
	case Sphere:
		for axis := 0; axis < 3; axis++ {
			prev := circlePoint(geom, axis, 0)
			for i := 1; i <= sphereSegments; i++ {
				p := circlePoint(geom, axis, 2*math.Pi*float64(i)/sphereSegments)
				buf = append(buf, [2]Vec3{prev, p})
				prev = p
			}
		}
	case *TriangleMesh:
		if geom == nil {
			break
		}
		v := geom.Vertices
		for i := 0; i+2 < len(geom.Indices); i += 3 {
			a, b, c := geom.Indices[i], geom.Indices[i+1], geom.Indices[i+2]
			if !geom.validIndex(a) || !geom.validIndex(b) || !geom.validIndex(c) {
				continue
			}
			buf = append(buf, [2]Vec3{v[a], v[b]}, [2]Vec3{v[b], v[c]}, [2]Vec3{v[c], v[a]})
		}
	default:
		bounds := g.Bounds()
		buf = appendEdges(buf, bounds)
	}
	return buf
}

// circlePoint returns a point on the sphere's great circle perpendicular to
// the given axis.
func circlePoint(s Sphere, axis int, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	var p Vec3
	switch axis {
	case 0:
		p = Vec3{0, cos, sin}
	case 1:
		p = Vec3{cos, 0, sin}
	default:
		p = Vec3{cos, sin, 0}
	}
	return s.Center.Add(p.Mul(s.Radius))
}

// projectPoint maps a local-space point through mvp to viewport pixels.
// Points behind the near plane are rejected.
func projectPoint(mvp mgl64.Mat4, p Vec3, cam *Camera) (float64, float64, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip[3] < cam.Near {
		return 0, 0, false
	}
	nx := clip[0] / clip[3]
	ny := clip[1] / clip[3]
	vp := cam.Viewport
	return vp.X + (nx+1)/2*vp.Width, vp.Y + (1-ny)/2*vp.Height, true
}

func nodeColor(n *Node) Color {
	if n.Color != (Color{}) {
		return n.Color
	}
	switch n.Group() {
	case GroupPickable:
		return colorPickable
	case GroupOccluder:
		return colorOccluder
	default:
		return colorDecorative
	}
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1)*a*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*a*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// drawDebugOverlay prints controller state in the top-left corner.
func drawDebugOverlay(dst *ebiten.Image, c *Controller) {
	cam := c.Camera()
	pending, ok := c.PendingReveal()
	if !ok {
		pending = "-"
	}
	msg := fmt.Sprintf("FPS: %.0f  TPS: %.0f\ncamera: %s %.0f%%\npos: %.2f %.2f %.2f\ntargets: %d  occluders: %d\npending reveal: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		c.Choreographer().State(), c.Choreographer().Progress()*100,
		cam.Position[0], cam.Position[1], cam.Position[2],
		c.Index().Len(), len(c.Index().Occluders()),
		pending)
	ebitenutil.DebugPrintAt(dst, msg, 4, 4)
}
