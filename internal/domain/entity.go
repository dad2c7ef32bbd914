package domain

// Entity is the base shared by every object in the knowledge graph.
type Entity struct {
	ID          string
	CodeDisplay string
	NameDisplay string
	Names       []string
}

// Base returns the shared entity fields.
func (e *Entity) Base() *Entity { return e }

// AddName records an alias, keeping Names ordered and deduplicated.
func (e *Entity) AddName(name string) {
	e.Names = AddName(e.Names, name)
}

// Object is implemented by every entity type exposed to the query layer.
type Object interface {
	Base() *Entity
	ObjectType() ObjectType
}

// Compile-time interface assertions.
var (
	_ Object = (*Language)(nil)
	_ Object = (*Locale)(nil)
	_ Object = (*Territory)(nil)
	_ Object = (*WritingSystem)(nil)
	_ Object = (*Census)(nil)
	_ Object = (*VariantTag)(nil)
	_ Object = (*Keyboard)(nil)
)
