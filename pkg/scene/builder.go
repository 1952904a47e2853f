package scene

// Builder accumulates primitives in draw order. The zero value is ready to
// use. A Builder only appends; it never edits what it has collected.
type Builder struct {
	items []Primitive
}

// Add appends primitives.
func (b *Builder) Add(p ...Primitive) {
	b.items = append(b.items, p...)
}

// Len returns the number of collected primitives.
func (b *Builder) Len() int { return len(b.items) }

// Items returns a copy of the collected primitives.
func (b *Builder) Items() []Primitive {
	out := make([]Primitive, len(b.items))
	copy(out, b.items)
	return out
}

// Group returns the collected primitives as a group with the given role.
func (b *Builder) Group(role Role) Primitive {
	return Group(role, b.items...)
}
