package graph

// Lineage is the parent/child edge table of one classification source.
// Edges are keyed by language ID; each child has at most one parent, and
// the children of a parent keep insertion order.
type Lineage struct {
	parent   map[string]string
	children map[string][]string
}

// NewLineage creates an empty edge table.
func NewLineage() *Lineage {
	return &Lineage{
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

// Link makes parent the parent of child, replacing child's previous edge.
// It refuses self-edges and edges that would close a cycle.
func (l *Lineage) Link(parent, child string) bool {
	if parent == "" || child == "" || parent == child {
		return false
	}
	if old, ok := l.parent[child]; ok && old == parent {
		return true
	}
	for cur, ok := parent, true; ok; cur, ok = l.parent[cur] {
		if cur == child {
			return false
		}
	}
	l.Unlink(child)
	l.parent[child] = parent
	l.children[parent] = append(l.children[parent], child)
	return true
}

// Unlink removes the edge from child to its parent, if any.
func (l *Lineage) Unlink(child string) {
	p, ok := l.parent[child]
	if !ok {
		return
	}
	delete(l.parent, child)
	kids := l.children[p]
	for i, k := range kids {
		if k == child {
			kids = append(kids[:i:i], kids[i+1:]...)
			break
		}
	}
	if len(kids) == 0 {
		delete(l.children, p)
	} else {
		l.children[p] = kids
	}
}

// Parent returns the parent ID of child.
func (l *Lineage) Parent(child string) (string, bool) {
	p, ok := l.parent[child]
	return p, ok
}

// Children returns a copy of the child IDs of parent.
func (l *Lineage) Children(parent string) []string {
	kids := l.children[parent]
	if len(kids) == 0 {
		return nil
	}
	out := make([]string, len(kids))
	copy(out, kids)
	return out
}

// Len returns the number of edges.
func (l *Lineage) Len() int { return len(l.parent) }

// Reset drops every edge.
func (l *Lineage) Reset() {
	clear(l.parent)
	clear(l.children)
}
