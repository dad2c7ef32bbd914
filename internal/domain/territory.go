package domain

// Territory is a node in both the containment tree and the sovereignty tree.
type Territory struct {
	Entity

	Scope           TerritoryScope
	ContainedInCode string
	SovereignCode   string

	Parent       *Territory
	Children     []*Territory
	Sovereign    *Territory
	Dependencies []*Territory

	// Population is measured for countries and dependencies and rolled up
	// from children for group scopes.
	Population      int64
	GDP             *float64
	LiteracyPercent *float64

	Locales  []*Locale
	Censuses []*Census
}

func (t *Territory) ObjectType() ObjectType { return ObjectTerritory }
