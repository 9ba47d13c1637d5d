package showcase

import "github.com/go-gl/mathgl/mgl64"

// --- ID counter ---

// nodeIDCounter is a plain counter (single-threaded, no atomic).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// MaterialHook is called for every matched pickable or decorative node during
// classification. Material normalization belongs to the rendering collaborator;
// the core only offers this seam.
type MaterialHook func(n *Node)

// --- Node ---

// Node is a scene graph element. A single flat struct is used for groups and
// geometry-bearing nodes alike.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation holds Euler angles in radians, applied X
	// then Y then Z.
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Geometry is nil for pure grouping nodes.
	Geometry Geometry

	// Visible=false hides the node and its subtree from rendering and picking.
	Visible bool

	// Color tints the wireframe. Zero value draws with the group color.
	Color Color

	// Metadata
	UserData any
	EntityID uint32

	// Computed
	worldMatrix    mgl64.Mat4
	invWorldMatrix mgl64.Mat4
	transformDirty bool

	group      Group
	classified bool
	disposed   bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = Vec3{1, 1, 1}
	n.Visible = true
	n.transformDirty = true
}

// NewGroupNode creates a node with no geometry, used to group children.
func NewGroupNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewMeshNode creates a geometry-bearing node.
func NewMeshNode(name string, geom Geometry) *Node {
	n := &Node{Name: name, Geometry: geom}
	nodeDefaults(n)
	return n
}

// NewBoxNode is shorthand for a mesh node with a box of the given size centered
// on the node origin.
func NewBoxNode(name string, size Vec3) *Node {
	return NewMeshNode(name, NewBox(Vec3{}, size))
}

// Group returns the node's picking classification.
func (n *Node) Group() Group {
	return n.group
}

// IsClassified reports whether the node has already been assigned a group.
func (n *Node) IsClassified() bool {
	return n.classified
}

// setGroup assigns the group once. Later calls are ignored so a node never
// changes group after classification.
func (n *Node) setGroup(g Group) bool {
	if n.classified {
		return false
	}
	n.group = g
	n.classified = true
	return true
}

// SetPosition sets the local position and marks the subtree dirty.
func (n *Node) SetPosition(p Vec3) {
	n.Position = p
	markSubtreeDirty(n)
}

// SetRotation sets the local Euler rotation (radians) and marks the subtree dirty.
func (n *Node) SetRotation(r Vec3) {
	n.Rotation = r
	markSubtreeDirty(n)
}

// SetScale sets the local scale and marks the subtree dirty.
func (n *Node) SetScale(s Vec3) {
	n.Scale = s
	markSubtreeDirty(n)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("showcase: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("showcase: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("showcase: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the visited node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// FindByName returns the first node in the subtree (depth-first) with the
// given name, or nil.
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Geometry = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
