package showcase

// Outcome is the result class of resolving a click.
type Outcome uint8

const (
	OutcomeNoHit   Outcome = iota // the ray struck no pickable target
	OutcomeBlocked                // an occluder is strictly nearer than the nearest target
	OutcomeHit                    // the nearest target is visible
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeBlocked:
		return "blocked"
	case OutcomeHit:
		return "hit"
	default:
		return "no-hit"
	}
}

// Resolution describes how a click was resolved.
type Resolution struct {
	Outcome Outcome
	// Target is the name of the selected target. Empty unless Outcome is
	// OutcomeHit.
	Target string
	// TargetHit is the nearest target hit. Valid for OutcomeHit and
	// OutcomeBlocked.
	TargetHit Hit
	// Blocker is the nearest occluder hit. Valid for OutcomeBlocked.
	Blocker Hit
}

// Resolve casts a ray through ndc and decides whether the nearest target is
// visible. The click is blocked only when an occluder lies strictly nearer
// than that target; a tie lets the target through. Resolve is pure: it
// reads the index and camera and mutates neither.
func Resolve(ndc NDC, cam *Camera, idx *Index) Resolution {
	targets := idx.Targets()
	if cam == nil || len(targets) == 0 {
		return Resolution{Outcome: OutcomeNoHit}
	}
	ray, err := cam.RayFromNDC(ndc)
	if err != nil {
		return Resolution{Outcome: OutcomeNoHit}
	}
	return resolveRay(ray, idx)
}

func resolveRay(ray Ray, idx *Index) Resolution {
	targetHits := Cast(ray, idx.Targets())
	if len(targetHits) == 0 {
		return Resolution{Outcome: OutcomeNoHit}
	}
	nearest := targetHits[0]

	occluderHits := Cast(ray, idx.Occluders())
	if len(occluderHits) > 0 && occluderHits[0].Distance < nearest.Distance {
		return Resolution{Outcome: OutcomeBlocked, TargetHit: nearest, Blocker: occluderHits[0]}
	}
	// A target nested under another target owns the hits on its own geometry.
	if nearest.Node.Group() == GroupPickable {
		nearest.Candidate = nearest.Node
	}
	return Resolution{Outcome: OutcomeHit, Target: nearest.Candidate.Name, TargetHit: nearest}
}

// ResolveClick returns the name of the visible target under ndc, or false
// when nothing pickable is hit or the nearest hit is occluded.
func ResolveClick(ndc NDC, cam *Camera, idx *Index) (string, bool) {
	res := Resolve(ndc, cam, idx)
	if res.Outcome != OutcomeHit {
		return "", false
	}
	return res.Target, true
}
