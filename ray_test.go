package showcase

import "testing"

func quadAt(name string, z float64) *Node {
	n := NewMeshNode(name, NewQuadMesh(2, 2))
	n.SetPosition(Vec3{0, 0, z})
	return n
}

var forwardRay = Ray{Origin: Vec3{0, 0, 10}, Direction: Vec3{0, 0, -1}}

func TestRayAt(t *testing.T) {
	assertVec(t, "At(4)", forwardRay.At(4), Vec3{0, 0, 6}, epsilon)
}

func TestCastSortedByDistance(t *testing.T) {
	far := quadAt("far", -5)
	near := quadAt("near", 3)
	mid := quadAt("mid", 0)

	hits := Cast(forwardRay, []*Node{far, near, mid})
	if len(hits) != 3 {
		t.Fatalf("len(hits) = %d, want 3", len(hits))
	}
	want := []string{"near", "mid", "far"}
	wantDist := []float64{7, 10, 15}
	for i, h := range hits {
		if h.Node.Name != want[i] {
			t.Errorf("hits[%d] = %q, want %q", i, h.Node.Name, want[i])
		}
		if !approxEqual(h.Distance, wantDist[i], epsilon) {
			t.Errorf("hits[%d].Distance = %v, want %v", i, h.Distance, wantDist[i])
		}
	}
	assertVec(t, "hit point", hits[0].Point, Vec3{0, 0, 3}, epsilon)
}

func TestCastStableTies(t *testing.T) {
	a := quadAt("a", 0)
	b := quadAt("b", 0)
	hits := Cast(forwardRay, []*Node{a, b})
	if len(hits) != 2 || hits[0].Node != a || hits[1].Node != b {
		t.Errorf("equal distances should keep candidate order, got %v", hits)
	}

	hits = Cast(forwardRay, []*Node{b, a})
	if len(hits) != 2 || hits[0].Node != b {
		t.Errorf("equal distances should keep candidate order, got %v", hits)
	}
}

func TestCastMiss(t *testing.T) {
	n := quadAt("n", 0)
	n.SetPosition(Vec3{10, 0, 0})
	if hits := Cast(forwardRay, []*Node{n}); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestCastBehindOrigin(t *testing.T) {
	n := quadAt("behind", 20)
	if hits := Cast(forwardRay, []*Node{n}); len(hits) != 0 {
		t.Errorf("node behind the ray origin should not be hit, got %v", hits)
	}
}

func TestCastDescendants(t *testing.T) {
	group := NewGroupNode("screen")
	face := quadAt("face", 0)
	group.AddChild(face)

	hits := Cast(forwardRay, []*Node{group})
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].Node != face || hits[0].Candidate != group {
		t.Errorf("hit = %+v, want Node=face Candidate=screen", hits[0])
	}
}

func TestCastSkipsInvisible(t *testing.T) {
	hidden := quadAt("hidden", 0)
	hidden.Visible = false
	if hits := Cast(forwardRay, []*Node{hidden}); len(hits) != 0 {
		t.Errorf("invisible node should not be hit, got %v", hits)
	}

	group := NewGroupNode("g")
	group.Visible = false
	group.AddChild(quadAt("child", 0))
	if hits := Cast(forwardRay, []*Node{group}); len(hits) != 0 {
		t.Errorf("children of invisible node should not be hit, got %v", hits)
	}
}

func TestCastSkipsNilAndDisposed(t *testing.T) {
	gone := quadAt("gone", 0)
	gone.Dispose()
	if hits := Cast(forwardRay, []*Node{nil, gone}); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestCastWorldDistanceUnderScale(t *testing.T) {
	parent := NewGroupNode("parent")
	parent.SetScale(Vec3{3, 3, 3})
	box := NewBoxNode("box", Vec3{1, 1, 1})
	parent.AddChild(box)

	// The world box spans z in [-1.5, 1.5].
	hits := Cast(forwardRay, []*Node{parent})
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if !approxEqual(hits[0].Distance, 8.5, 1e-9) {
		t.Errorf("Distance = %v, want 8.5", hits[0].Distance)
	}
}

func TestCastRotatedQuadEdgeOn(t *testing.T) {
	n := quadAt("edge", 0)
	n.SetRotation(Vec3{0, 1.5707963267948966, 0})
	n.SetPosition(Vec3{0.5, 0, 0})
	if hits := Cast(forwardRay, []*Node{n}); len(hits) != 0 {
		t.Errorf("edge-on quad off the ray should not be hit, got %v", hits)
	}
}

func TestCastZeroScaleNeverHits(t *testing.T) {
	n := NewBoxNode("flat", Vec3{1, 1, 1})
	n.SetScale(Vec3{1, 1, 0})
	if hits := Cast(forwardRay, []*Node{n}); len(hits) != 0 {
		t.Errorf("zero-scale node should not be hit, got %v", hits)
	}
}

func TestCastNDC(t *testing.T) {
	cam := newTestCamera()
	n := quadAt("screen", 0)

	hits := CastNDC(NDC{0, 0}, cam, []*Node{n})
	if len(hits) != 1 || !approxEqual(hits[0].Distance, 10, 1e-9) {
		t.Errorf("CastNDC center = %v, want one hit at 10", hits)
	}
	if hits := CastNDC(NDC{0, 0}, nil, []*Node{n}); hits != nil {
		t.Errorf("nil camera should yield nil, got %v", hits)
	}
	if hits := CastNDC(NDC{0, 0}, cam, nil); hits != nil {
		t.Errorf("no candidates should yield nil, got %v", hits)
	}

	cam.LookAt = cam.Position
	if hits := CastNDC(NDC{0, 0}, cam, []*Node{n}); hits != nil {
		t.Errorf("singular camera should yield nil, got %v", hits)
	}
}

func TestCastDoesNotMutateCandidates(t *testing.T) {
	a := quadAt("a", 0)
	b := quadAt("b", 2)
	cands := []*Node{a, b}
	Cast(forwardRay, cands)
	if cands[0] != a || cands[1] != b {
		t.Error("Cast reordered the candidate slice")
	}
	if a.Parent != nil || a.NumChildren() != 0 {
		t.Error("Cast changed the hierarchy")
	}
}
