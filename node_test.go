package showcase

import "testing"

func TestNewNodeDefaults(t *testing.T) {
	n := NewGroupNode("root")
	if n.Name != "root" {
		t.Errorf("Name = %q, want %q", n.Name, "root")
	}
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Scale != (Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1,1,1)", n.Scale)
	}
	if !n.Visible {
		t.Error("new nodes should be visible")
	}
	if n.Geometry != nil {
		t.Error("group node should have no geometry")
	}
	if n.IsClassified() {
		t.Error("new node should not be classified")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	a := NewGroupNode("a")
	b := NewGroupNode("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both %d", a.ID)
	}
}

func TestAddChild(t *testing.T) {
	parent := NewGroupNode("parent")
	child := NewBoxNode("child", Vec3{1, 1, 1})
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Errorf("Children = %v, want [child]", parent.Children())
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewGroupNode("a")
	b := NewGroupNode("b")
	child := NewGroupNode("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent NumChildren = %d, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child should be reparented to b")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil child")
		}
	}()
	NewGroupNode("root").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	root := NewGroupNode("root")
	mid := NewGroupNode("mid")
	leaf := NewGroupNode("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	leaf.AddChild(root)
}

func TestRemoveChild(t *testing.T) {
	parent := NewGroupNode("parent")
	a := NewGroupNode("a")
	b := NewGroupNode("b")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveChild(a)

	if a.Parent != nil {
		t.Error("removed child should have no parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != b {
		t.Errorf("Children after remove = %v, want [b]", parent.Children())
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewGroupNode("a")
	stray := NewGroupNode("stray")
	defer func() {
		if recover() == nil {
			t.Error("expected panic removing a non-child")
		}
	}()
	a.RemoveChild(stray)
}

func TestRemoveFromParentNoParent(t *testing.T) {
	n := NewGroupNode("solo")
	n.RemoveFromParent()
	if n.Parent != nil {
		t.Error("Parent should stay nil")
	}
}

func TestWalkOrderAndSkip(t *testing.T) {
	root := NewGroupNode("root")
	a := NewGroupNode("a")
	a1 := NewGroupNode("a1")
	b := NewGroupNode("b")
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)

	var order []string
	root.Walk(func(n *Node) bool {
		order = append(order, n.Name)
		return true
	})
	want := []string{"root", "a", "a1", "b"}
	if len(order) != len(want) {
		t.Fatalf("Walk visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Walk[%d] = %q, want %q", i, order[i], want[i])
		}
	}

	order = order[:0]
	root.Walk(func(n *Node) bool {
		order = append(order, n.Name)
		return n.Name != "a"
	})
	for _, name := range order {
		if name == "a1" {
			t.Error("a1 should be skipped when a returns false")
		}
	}
}

func TestFindByName(t *testing.T) {
	root := NewGroupNode("root")
	screens := NewGroupNode("screens")
	target := NewBoxNode("screen_a", Vec3{1, 1, 1})
	root.AddChild(screens)
	screens.AddChild(target)

	if got := root.FindByName("screen_a"); got != target {
		t.Errorf("FindByName = %v, want target", got)
	}
	if got := root.FindByName("missing"); got != nil {
		t.Errorf("FindByName(missing) = %v, want nil", got)
	}
}

func TestFindByNameFirstMatch(t *testing.T) {
	root := NewGroupNode("root")
	first := NewGroupNode("dup")
	second := NewGroupNode("dup")
	root.AddChild(first)
	root.AddChild(second)
	if got := root.FindByName("dup"); got != first {
		t.Error("FindByName should return the first depth-first match")
	}
}

func TestDispose(t *testing.T) {
	root := NewGroupNode("root")
	mid := NewGroupNode("mid")
	leaf := NewBoxNode("leaf", Vec3{1, 1, 1})
	root.AddChild(mid)
	mid.AddChild(leaf)

	mid.Dispose()

	if !mid.IsDisposed() || !leaf.IsDisposed() {
		t.Error("mid and leaf should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Errorf("root NumChildren = %d, want 0", root.NumChildren())
	}
	if leaf.Geometry != nil {
		t.Error("disposed node should drop its geometry")
	}
	// Second dispose is a no-op.
	mid.Dispose()
}

func TestSetGroupOnce(t *testing.T) {
	n := NewBoxNode("n", Vec3{1, 1, 1})
	if !n.setGroup(GroupOccluder) {
		t.Fatal("first setGroup should succeed")
	}
	if n.setGroup(GroupPickable) {
		t.Error("second setGroup should be ignored")
	}
	if n.Group() != GroupOccluder {
		t.Errorf("Group = %v, want %v", n.Group(), GroupOccluder)
	}
}
