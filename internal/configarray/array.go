package configarray

import "strconv"

// ConfigArray is an ordered sequence of elements. Later elements take
// precedence in the extracted result. Arrays are created per directory
// and cached by the cascade; they are immutable after construction.
type ConfigArray struct {
	// Elements in cascade order, root-most first.
	Elements []*Element
}

// New creates a config array over the given elements.
func New(elements ...*Element) *ConfigArray {
	return &ConfigArray{Elements: elements}
}

// Concat returns a new array holding parent's elements followed by a's.
// If a is root, the parent is discarded and a is returned unchanged.
func (a *ConfigArray) Concat(parent *ConfigArray) *ConfigArray {
	if parent == nil || len(parent.Elements) == 0 || a.IsRoot() {
		return a
	}

	elements := make([]*Element, 0, len(parent.Elements)+len(a.Elements))
	elements = append(elements, parent.Elements...)
	elements = append(elements, a.Elements...)
	return &ConfigArray{Elements: elements}
}

// IsRoot reports whether the cascade stops at this array. The decision
// belongs to the last element that states root-ness; predicated elements
// never do (their root is suppressed during normalization).
func (a *ConfigArray) IsRoot() bool {
	for i := len(a.Elements) - 1; i >= 0; i-- {
		if root := a.Elements[i].Root; root != nil {
			return *root
		}
	}
	return false
}

// MatchesFile reports whether any predicated element applies to filePath.
// The enumerator uses this to opt in files whose extension is outside the
// default set but which some element's files globs target.
func (a *ConfigArray) MatchesFile(filePath string) bool {
	for _, el := range a.Elements {
		if el.Criteria != nil && el.Criteria.Test(filePath) {
			return true
		}
	}
	return false
}

// String renders a stable JSON descriptor of the array's elements.
func (a *ConfigArray) String() string {
	json := "[]"
	for i, el := range a.Elements {
		json = el.describe(json, strconv.Itoa(i))
	}
	return json
}
