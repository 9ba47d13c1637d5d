package showcase

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rayEpsilon guards parallel-ray and self-intersection tests.
const rayEpsilon = 1e-9

// Geometry is the intersectable shape attached to a node, in the node's local
// coordinates.
type Geometry interface {
	// IntersectRay returns the smallest non-negative parameter t at which
	// origin + t*dir enters the shape. dir need not be unit length.
	IntersectRay(origin, dir Vec3) (t float64, ok bool)
	// Bounds returns the local-space axis-aligned bounds of the shape.
	Bounds() Box
}

// --- Box ---

// Box is an axis-aligned box in local coordinates.
type Box struct {
	Min, Max Vec3
}

// NewBox creates a box centered at center with the given full size.
func NewBox(center, size Vec3) Box {
	half := Vec3{math.Abs(size[0]) / 2, math.Abs(size[1]) / 2, math.Abs(size[2]) / 2}
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the full extent of the box along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Bounds returns the box itself.
func (b Box) Bounds() Box { return b }

// Corners returns the eight corners of the box. Index bit 0 selects X,
// bit 1 selects Y, bit 2 selects Z (0 = Min, 1 = Max).
func (b Box) Corners() [8]Vec3 {
	var out [8]Vec3
	for i := range out {
		p := b.Min
		if i&1 != 0 {
			p[0] = b.Max[0]
		}
		if i&2 != 0 {
			p[1] = b.Max[1]
		}
		if i&4 != 0 {
			p[2] = b.Max[2]
		}
		out[i] = p
	}
	return out
}

// IntersectRay uses the slab method. A ray starting inside the box reports the
// exit point.
func (b Box) IntersectRay(origin, dir Vec3) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		lo, hi := b.Min[axis], b.Max[axis]
		if math.Abs(d) < rayEpsilon {
			// Parallel to this slab: miss unless the origin lies within it.
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 || math.IsInf(tmax, 1) {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// --- Sphere ---

// Sphere is a sphere in local coordinates.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Bounds returns the box enclosing the sphere.
func (s Sphere) Bounds() Box {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return Box{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// IntersectRay solves the ray/sphere quadratic and returns the nearest
// non-negative root.
func (s Sphere) IntersectRay(origin, dir Vec3) (float64, bool) {
	oc := origin.Sub(s.Center)
	a := dir.Dot(dir)
	if a < rayEpsilon {
		return 0, false
	}
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// --- TriangleMesh ---

// TriangleMesh is an indexed triangle list in local coordinates. Every three
// consecutive indices form one triangle.
type TriangleMesh struct {
	Vertices []Vec3
	Indices  []int

	bounds      Box
	boundsValid bool
}

// NewTriangleMesh creates a mesh and precomputes its bounds.
func NewTriangleMesh(vertices []Vec3, indices []int) *TriangleMesh {
	m := &TriangleMesh{Vertices: vertices, Indices: indices}
	m.Bounds()
	return m
}

// Bounds returns the local-space AABB of all vertices.
func (m *TriangleMesh) Bounds() Box {
	if m == nil {
		return Box{}
	}
	if m.boundsValid {
		return m.bounds
	}
	if len(m.Vertices) == 0 {
		return Box{}
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	m.bounds = Box{Min: lo, Max: hi}
	m.boundsValid = true
	return m.bounds
}

// IntersectRay tests every triangle (Möller–Trumbore) after a bounds check.
// Both faces are hit.
func (m *TriangleMesh) IntersectRay(origin, dir Vec3) (float64, bool) {
	if m == nil {
		return 0, false
	}
	if _, ok := m.Bounds().IntersectRay(origin, dir); !ok {
		return 0, false
	}
	best := math.Inf(1)
	hit := false
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if !m.validIndex(ia) || !m.validIndex(ib) || !m.validIndex(ic) {
			continue
		}
		if t, ok := rayTriangle(origin, dir, m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]); ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}

func (m *TriangleMesh) validIndex(i int) bool {
	return i >= 0 && i < len(m.Vertices)
}

func rayTriangle(origin, dir, v0, v1, v2 Vec3) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det
	tvec := origin.Sub(v0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(qvec) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}

// NewQuadMesh builds a two-triangle rectangle of the given width and height
// in the local XY plane, centered on the origin and facing +Z. Screens in the
// showcase are modeled this way.
func NewQuadMesh(width, height float64) *TriangleMesh {
	hw, hh := width/2, height/2
	return NewTriangleMesh(
		[]Vec3{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}},
		[]int{0, 1, 2, 0, 2, 3},
	)
}

// transformBox returns the world-space AABB of b under m.
func transformBox(m mgl64.Mat4, b Box) Box {
	corners := b.Corners()
	first := mgl64.TransformCoordinate(corners[0], m)
	lo, hi := first, first
	for _, c := range corners[1:] {
		p := mgl64.TransformCoordinate(c, m)
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	return Box{Min: lo, Max: hi}
}
