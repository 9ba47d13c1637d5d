package showcase

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestComputeLocalMatrixIdentity(t *testing.T) {
	n := NewGroupNode("n")
	if m := computeLocalMatrix(n); m != mgl64.Ident4() {
		t.Errorf("local matrix = %v, want identity", m)
	}
}

func TestWorldPositionTranslate(t *testing.T) {
	n := NewGroupNode("n")
	n.SetPosition(Vec3{1, 2, 3})
	assertVec(t, "WorldPosition", n.WorldPosition(), Vec3{1, 2, 3}, epsilon)
}

func TestWorldMatrixParentChild(t *testing.T) {
	parent := NewGroupNode("parent")
	parent.SetPosition(Vec3{10, 0, 0})
	parent.SetScale(Vec3{2, 2, 2})
	child := NewGroupNode("child")
	child.SetPosition(Vec3{1, 1, 0})
	parent.AddChild(child)

	assertVec(t, "child world", child.WorldPosition(), Vec3{12, 2, 0}, epsilon)
}

func TestRotationThenTranslation(t *testing.T) {
	n := NewGroupNode("n")
	n.SetPosition(Vec3{5, 0, 0})
	n.SetRotation(Vec3{0, 0, math.Pi / 2})
	// Local +X rotates to world +Y before the translation applies.
	assertVec(t, "LocalToWorld", n.LocalToWorld(Vec3{1, 0, 0}), Vec3{5, 1, 0}, 1e-12)
}

func TestWorldToLocalInverts(t *testing.T) {
	parent := NewGroupNode("parent")
	parent.SetRotation(Vec3{0.3, -0.7, 1.1})
	child := NewGroupNode("child")
	child.SetPosition(Vec3{1, -2, 3})
	child.SetScale(Vec3{2, 0.5, 1})
	parent.AddChild(child)

	p := Vec3{0.25, 4, -1}
	back := child.WorldToLocal(child.LocalToWorld(p))
	assertVec(t, "round trip", back, p, 1e-9)
}

func TestParentMoveRefreshesChild(t *testing.T) {
	parent := NewGroupNode("parent")
	child := NewGroupNode("child")
	parent.AddChild(child)
	_ = child.WorldMatrix()

	parent.SetPosition(Vec3{0, 7, 0})
	assertVec(t, "child after parent move", child.WorldPosition(), Vec3{0, 7, 0}, epsilon)
}

func TestMarkDirtyAfterDirectWrite(t *testing.T) {
	n := NewGroupNode("n")
	_ = n.WorldMatrix()
	n.Position = Vec3{3, 3, 3}
	n.MarkDirty()
	assertVec(t, "WorldPosition", n.WorldPosition(), Vec3{3, 3, 3}, epsilon)
}

func TestDegenerateScaleInverse(t *testing.T) {
	n := NewBoxNode("flat", Vec3{1, 1, 1})
	n.SetScale(Vec3{1, 0, 1})
	if inv := n.InverseWorldMatrix(); inv != (mgl64.Mat4{}) {
		t.Errorf("inverse of a zero-scale transform = %v, want zero matrix", inv)
	}
}

func TestWorldBoundsNoGeometry(t *testing.T) {
	if _, ok := NewGroupNode("g").WorldBounds(); ok {
		t.Error("group node should report no bounds")
	}
}
