package showcase

import "github.com/go-gl/mathgl/mgl64"

// computeLocalMatrix computes the local 4x4 matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> RotateX -> RotateY -> RotateZ -> Translate(Position)
func computeLocalMatrix(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := mgl64.HomogRotate3DZ(n.Rotation[2]).
		Mul4(mgl64.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl64.HomogRotate3DX(n.Rotation[0]))
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node's local-to-world matrix, recomputing it (and
// any dirty ancestors) on demand.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	n.refreshTransform()
	return n.worldMatrix
}

// InverseWorldMatrix returns the world-to-local matrix. A degenerate transform
// (zero scale on some axis) yields the zero matrix, which no ray can hit.
func (n *Node) InverseWorldMatrix() mgl64.Mat4 {
	n.refreshTransform()
	return n.invWorldMatrix
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() Vec3 {
	m := n.WorldMatrix()
	return Vec3{m[12], m[13], m[14]}
}

// WorldBounds returns the world-space AABB of the node's geometry. The second
// result is false for nodes without geometry.
func (n *Node) WorldBounds() (Box, bool) {
	if n.Geometry == nil {
		return Box{}, false
	}
	return transformBox(n.WorldMatrix(), n.Geometry.Bounds()), true
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix())
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, n.InverseWorldMatrix())
}

// MarkDirty forces recomputation of the world matrix for this node and its
// subtree. Call it after writing Position, Rotation, or Scale directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// refreshTransform recomputes the cached matrices when this node or an
// ancestor changed.
func (n *Node) refreshTransform() {
	parentDirty := n.Parent != nil && n.Parent.needsRefresh()
	if !n.transformDirty && !parentDirty {
		return
	}
	local := computeLocalMatrix(n)
	if n.Parent != nil {
		n.worldMatrix = n.Parent.WorldMatrix().Mul4(local)
	} else {
		n.worldMatrix = local
	}
	n.invWorldMatrix = n.worldMatrix.Inv()
	n.transformDirty = false
}

// needsRefresh reports whether n or any ancestor has a stale transform.
func (n *Node) needsRefresh() bool {
	for p := n; p != nil; p = p.Parent {
		if p.transformDirty {
			return true
		}
	}
	return false
}
