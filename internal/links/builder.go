package links

import "maps"

// Builder assembles a Response. Every method returns a new Builder and
// leaves the receiver untouched, so a partially configured builder can be
// shared and extended independently.
type Builder[T any] struct {
	data      T
	self      Link
	parent    *Link
	relations map[string]Link
}

func NewBuilder[T any](data T, selfHref string, methods ...string) Builder[T] {
	return Builder[T]{
		data: data,
		self: New(selfHref, methods...),
	}
}

func (b Builder[T]) SelfMethods(methods ...string) Builder[T] {
	b.self = New(b.self.Href, methods...)
	return b
}

func (b Builder[T]) Parent(href string, methods ...string) Builder[T] {
	parent := New(href, methods...)
	b.parent = &parent
	return b
}

func (b Builder[T]) WithoutParent() Builder[T] {
	b.parent = nil
	return b
}

func (b Builder[T]) Link(name, href string, methods ...string) Builder[T] {
	next := make(map[string]Link, len(b.relations)+1)
	maps.Copy(next, b.relations)
	next[relationKey(name)] = New(href, methods...)

	b.relations = next
	return b
}

func (b Builder[T]) Build() Response[T] {
	out := Response[T]{
		Data:  b.data,
		Links: Links{Self: b.self},
	}

	if b.parent != nil {
		parent := *b.parent
		out.Links.Parent = &parent
	}

	if len(b.relations) > 0 {
		out.Links.Relations = maps.Clone(b.relations)
	}

	return out
}

// WithData swaps the entity carried by the builder.
func (b Builder[T]) WithData(data T) Builder[T] {
	b.data = data
	return b
}

// BuildEach builds one response per item, all sharing template's links.
func BuildEach[T any](template Builder[T], items []T) []Response[T] {
	out := make([]Response[T], 0, len(items))
	for _, item := range items {
		out = append(out, template.WithData(item).Build())
	}
	return out
}
