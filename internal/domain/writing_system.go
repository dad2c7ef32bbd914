package domain

// WritingSystem is a script, organized in a parent/child tree.
type WritingSystem struct {
	Entity

	ParentCode            string
	PrimaryLanguageCode   string
	TerritoryOfOriginCode string
	Sample                string

	Parent            *WritingSystem
	Children          []*WritingSystem
	PrimaryLanguage   *Language
	TerritoryOfOrigin *Territory
	Languages         []*Language
	Locales           []*Locale

	// PopulationUpperBound is attributed directly to this script.
	// PopulationOfDescendants covers the children only and never includes
	// the script's own upper bound.
	PopulationUpperBound    int64
	PopulationOfDescendants int64
}

func (w *WritingSystem) ObjectType() ObjectType { return ObjectWritingSystem }
