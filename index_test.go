package showcase

import "testing"

func testBindings() Bindings {
	return Bindings{
		"screen_a": {Kind: ContentVideo, Path: "/videos/a.mp4"},
		"screen_b": {Kind: ContentImage, Path: "/images/b.png"},
	}
}

// buildTestScene returns a root with two bound screens, the document
// screen, one wall, and one decorative floor.
func buildTestScene() *Node {
	root := NewGroupNode("root")
	screens := NewGroupNode("screens")
	screens.AddChild(NewMeshNode("screen_a", NewQuadMesh(2, 1)))
	screens.AddChild(NewMeshNode("screen_b", NewQuadMesh(2, 1)))
	screens.AddChild(NewMeshNode(DocumentTargetName, NewQuadMesh(1, 1)))
	root.AddChild(screens)
	root.AddChild(NewBoxNode("wall", Vec3{1, 1, 1}))
	root.AddChild(NewBoxNode("floor", Vec3{10, 0.1, 10}))
	return root
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestClassifyGroups(t *testing.T) {
	root := buildTestScene()
	idx := Classify(root, testBindings(), []string{"wall"})

	gotTargets := names(idx.Targets())
	wantTargets := []string{"screen_a", "screen_b", DocumentTargetName}
	if len(gotTargets) != len(wantTargets) {
		t.Fatalf("Targets = %v, want %v", gotTargets, wantTargets)
	}
	for i := range wantTargets {
		if gotTargets[i] != wantTargets[i] {
			t.Errorf("Targets[%d] = %q, want %q", i, gotTargets[i], wantTargets[i])
		}
	}
	if got := names(idx.Occluders()); len(got) != 1 || got[0] != "wall" {
		t.Errorf("Occluders = %v, want [wall]", got)
	}
	if idx.Len() != 3 {
		t.Errorf("Len = %d, want 3", idx.Len())
	}

	floor := root.FindByName("floor")
	if floor.Group() != GroupDecorative || !floor.IsClassified() {
		t.Errorf("floor group = %v, want %v", floor.Group(), GroupDecorative)
	}
	if screens := root.FindByName("screens"); screens.IsClassified() {
		t.Error("nodes without geometry should not be classified")
	}
}

func TestClassifyDocumentTargetWithoutBinding(t *testing.T) {
	root := NewGroupNode("root")
	root.AddChild(NewMeshNode(DocumentTargetName, NewQuadMesh(1, 1)))
	idx := Classify(root, nil, nil)
	if _, ok := idx.Target(DocumentTargetName); !ok {
		t.Error("document screen should be pickable even without a binding")
	}
}

func TestClassifyBindingWinsOverOccluder(t *testing.T) {
	root := NewGroupNode("root")
	root.AddChild(NewMeshNode("screen_a", NewQuadMesh(1, 1)))
	idx := Classify(root, testBindings(), []string{"screen_a"})
	if idx.Len() != 1 || len(idx.Occluders()) != 0 {
		t.Errorf("bound name listed as occluder: targets=%v occluders=%v",
			names(idx.Targets()), names(idx.Occluders()))
	}
}

func TestClassifyHooks(t *testing.T) {
	root := buildTestScene()
	seen := map[string]int{}
	Classify(root, testBindings(), []string{"wall"}, func(n *Node) {
		seen[n.Name]++
	}, nil)

	for _, name := range []string{"screen_a", "screen_b", DocumentTargetName, "floor"} {
		if seen[name] != 1 {
			t.Errorf("hook calls for %q = %d, want 1", name, seen[name])
		}
	}
	if seen["wall"] != 0 {
		t.Errorf("hook should not run for occluders, ran %d times", seen["wall"])
	}
	if seen["screens"] != 0 || seen["root"] != 0 {
		t.Error("hook should not run for nodes without geometry")
	}
}

func TestClassifyNilRoot(t *testing.T) {
	idx := Classify(nil, testBindings(), []string{"wall"})
	if idx == nil {
		t.Fatal("Classify(nil) should return an empty index")
	}
	if idx.Len() != 0 || len(idx.Occluders()) != 0 {
		t.Errorf("expected empty index, got %d targets", idx.Len())
	}
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	if idx.Len() != 0 || idx.Targets() != nil || idx.Occluders() != nil {
		t.Error("nil index should be empty")
	}
	if _, ok := idx.Target("screen_a"); ok {
		t.Error("nil index should have no targets")
	}
}

func TestReclassifyKeepsGroup(t *testing.T) {
	root := buildTestScene()
	Classify(root, testBindings(), []string{"wall"})

	// A second pass with different rules does not move any node.
	idx := Classify(root, nil, []string{"screen_a"})
	if idx.Len() != 3 {
		t.Errorf("Len after reclassify = %d, want 3", idx.Len())
	}
	if got := names(idx.Occluders()); len(got) != 1 || got[0] != "wall" {
		t.Errorf("Occluders after reclassify = %v, want [wall]", got)
	}
}

func TestIndexTargetFirstByName(t *testing.T) {
	root := NewGroupNode("root")
	first := NewMeshNode("screen_a", NewQuadMesh(1, 1))
	second := NewMeshNode("screen_a", NewQuadMesh(1, 1))
	root.AddChild(first)
	root.AddChild(second)

	idx := Classify(root, testBindings(), nil)
	if n, _ := idx.Target("screen_a"); n != first {
		t.Error("Target should return the first node with the name")
	}
	if idx.Len() != 2 {
		t.Errorf("Len = %d, want 2", idx.Len())
	}
}
