package filter

import "strings"

// Kind tags the active filtering criterion. Exactly one criterion is active
// at a time: constructing a selector of one kind discards the other kind's
// value, which is what makes "search overrides category" explicit instead of
// an accident of event ordering.
type Kind int

const (
	KindAllCategories Kind = iota
	KindCategory
	KindSearchTerm
)

// Selector is the active filtering criterion driving the displayed subset.
type Selector struct {
	kind  Kind
	value string
}

// AllCategories selects the entire catalog.
func AllCategories() Selector {
	return Selector{kind: KindAllCategories}
}

// ByCategory selects an exact category label. The wildcard label and the
// empty string are equivalent to AllCategories.
func ByCategory(label string) Selector {
	if label == "" || label == wildcardLabel {
		return AllCategories()
	}
	return Selector{kind: KindCategory, value: label}
}

// BySearchTerm selects a free-text query. The term is trimmed; an empty
// trimmed term is the defined equivalence to AllCategories.
func BySearchTerm(term string) Selector {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return AllCategories()
	}
	return Selector{kind: KindSearchTerm, value: trimmed}
}

// Kind returns the selector's tag.
func (s Selector) Kind() Kind {
	return s.kind
}

// Value returns the category label or trimmed search term, empty for
// AllCategories.
func (s Selector) Value() string {
	return s.value
}
