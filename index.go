package showcase

// Index is the one-time classification of a loaded scene into pickable
// targets and occluders. It never changes after Classify returns.
//
// A nil *Index is valid and behaves as an empty scene: every query returns
// nothing and every click resolves to "no target".
type Index struct {
	targets   []*Node
	occluders []*Node
	byName    map[string]*Node
}

// Classify walks root once, depth-first in child order, and sorts every
// geometry-bearing node into a group:
//
//   - name bound in bindings, or equal to DocumentTargetName: GroupPickable
//   - name listed in occluderNames: GroupOccluder
//   - anything else: GroupDecorative
//
// Hooks run for every matched pickable or decorative node (never for
// occluders). A node classified by an earlier call keeps its group and is
// indexed under that group. A nil root yields an empty index.
func Classify(root *Node, bindings Bindings, occluderNames []string, hooks ...MaterialHook) *Index {
	idx := &Index{byName: make(map[string]*Node)}
	if root == nil || root.disposed {
		return idx
	}

	occluders := make(map[string]struct{}, len(occluderNames))
	for _, name := range occluderNames {
		occluders[name] = struct{}{}
	}

	root.Walk(func(n *Node) bool {
		if n.Geometry == nil {
			return true
		}
		n.setGroup(classifyName(n.Name, bindings, occluders))

		switch n.group {
		case GroupPickable:
			idx.targets = append(idx.targets, n)
			if _, dup := idx.byName[n.Name]; !dup {
				idx.byName[n.Name] = n
			}
			runHooks(hooks, n)
		case GroupOccluder:
			idx.occluders = append(idx.occluders, n)
		default:
			runHooks(hooks, n)
		}
		return true
	})
	return idx
}

func classifyName(name string, bindings Bindings, occluders map[string]struct{}) Group {
	if _, ok := bindings[name]; ok || name == DocumentTargetName {
		return GroupPickable
	}
	if _, ok := occluders[name]; ok {
		return GroupOccluder
	}
	return GroupDecorative
}

func runHooks(hooks []MaterialHook, n *Node) {
	for _, h := range hooks {
		if h != nil {
			h(n)
		}
	}
}

// Target returns the first pickable node with the given name.
func (idx *Index) Target(name string) (*Node, bool) {
	if idx == nil {
		return nil, false
	}
	n, ok := idx.byName[name]
	return n, ok
}

// Targets returns the pickable nodes in traversal order. The returned slice
// MUST NOT be mutated by the caller.
func (idx *Index) Targets() []*Node {
	if idx == nil {
		return nil
	}
	return idx.targets
}

// Occluders returns the occluder nodes in traversal order. The returned slice
// MUST NOT be mutated by the caller.
func (idx *Index) Occluders() []*Node {
	if idx == nil {
		return nil
	}
	return idx.occluders
}

// Len returns the number of pickable targets.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.targets)
}
