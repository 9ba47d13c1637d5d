package showcase

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// NDC is a normalized device coordinate: X and Y in [-1, 1], origin at the
// viewport center, Y pointing up.
type NDC struct {
	X, Y float64
}

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is one ray intersection.
type Hit struct {
	// Node is the struck node. It is Candidate itself or one of its descendants.
	Node *Node
	// Candidate is the entry of the candidate list the hit belongs to.
	Candidate *Node
	// Distance is measured from the ray origin in world units.
	Distance float64
	// Point is the world-space intersection point.
	Point Vec3
}

// Cast intersects ray with every candidate and the geometry of its visible
// descendants. Hits come back nearest first; equal distances keep candidate
// order (then depth-first order within a candidate). Candidates are not
// modified apart from refreshing cached world matrices.
func Cast(ray Ray, candidates []*Node) []Hit {
	var hits []Hit
	for _, cand := range candidates {
		if cand == nil || cand.disposed {
			continue
		}
		cand.Walk(func(n *Node) bool {
			if !n.Visible {
				return false
			}
			if n.Geometry == nil {
				return true
			}
			if dist, point, ok := intersectNode(ray, n); ok {
				hits = append(hits, Hit{Node: n, Candidate: cand, Distance: dist, Point: point})
			}
			return true
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// CastNDC builds a ray through ndc from cam and casts it against candidates.
// A camera whose view cannot be inverted hits nothing.
func CastNDC(ndc NDC, cam *Camera, candidates []*Node) []Hit {
	if cam == nil || len(candidates) == 0 {
		return nil
	}
	ray, err := cam.RayFromNDC(ndc)
	if err != nil {
		return nil
	}
	return Cast(ray, candidates)
}

// intersectNode transforms the ray into n's local space, tests the geometry,
// and maps the hit back to world space.
func intersectNode(ray Ray, n *Node) (dist float64, point Vec3, ok bool) {
	inv := n.InverseWorldMatrix()
	if inv == (mgl64.Mat4{}) {
		return 0, Vec3{}, false
	}
	localOrigin := mgl64.TransformCoordinate(ray.Origin, inv)
	localDir := mgl64.TransformNormal(ray.Direction, inv)

	t, hit := n.Geometry.IntersectRay(localOrigin, localDir)
	if !hit {
		return 0, Vec3{}, false
	}
	point = n.LocalToWorld(localOrigin.Add(localDir.Mul(t)))
	return point.Sub(ray.Origin).Len(), point, true
}
