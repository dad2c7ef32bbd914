package graph

import (
	"maps"
	"slices"
)

// Index resolves codes of one code space to canonical language IDs.
// A code is either bound directly to an ID or redirected to another code
// of the same space. Direct bindings win over redirects.
type Index struct {
	ids   map[string]string
	alias map[string]string
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		ids:   make(map[string]string),
		alias: make(map[string]string),
	}
}

// Put binds code to id, replacing any previous binding or redirect.
func (x *Index) Put(code, id string) {
	if code == "" {
		return
	}
	x.ids[code] = id
	delete(x.alias, code)
}

// Remove drops the direct binding and any redirect for code.
func (x *Index) Remove(code string) {
	delete(x.ids, code)
	delete(x.alias, code)
}

// Redirect makes code resolve to whatever target resolves to. It reports
// false when code is empty, equal to target or already bound directly.
func (x *Index) Redirect(code, target string) bool {
	if code == "" || code == target {
		return false
	}
	if _, bound := x.ids[code]; bound {
		return false
	}
	x.alias[code] = target
	return true
}

// Has reports whether code has a direct binding.
func (x *Index) Has(code string) bool {
	_, ok := x.ids[code]
	return ok
}

// Lookup resolves code to an ID, following redirects. Every code on the
// followed chain is rewritten to point at the final code. Chains that
// loop or end in an unbound code resolve to nothing.
func (x *Index) Lookup(code string) (string, bool) {
	if id, ok := x.ids[code]; ok {
		return id, true
	}

	var path []string
	seen := make(map[string]bool)
	cur := code
	for {
		next, ok := x.alias[cur]
		if !ok {
			return "", false
		}
		if seen[next] || next == code {
			return "", false
		}
		path = append(path, cur)
		seen[cur] = true
		cur = next
		if id, ok := x.ids[cur]; ok {
			for _, p := range path {
				x.alias[p] = cur
			}
			return id, true
		}
	}
}

// Rebind moves every direct binding of oldID to newID.
func (x *Index) Rebind(oldID, newID string) {
	for code, id := range x.ids {
		if id == oldID {
			x.ids[code] = newID
		}
	}
}

// Len returns the number of direct bindings.
func (x *Index) Len() int { return len(x.ids) }

// Codes returns the directly bound codes in sorted order.
func (x *Index) Codes() []string {
	return slices.Sorted(maps.Keys(x.ids))
}
