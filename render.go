package vebmap

import (
	"fmt"
	"strings"
)

// String renders m as Vebmap[capacity=C, elements=[(k, v), ...]] with
// elements in ascending key order. Intended for human inspection only;
// there is no corresponding parser.
func (m *Map[V]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vebmap[capacity=%d, elements=[", m.Capacity())
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "(%v, %v)", k, v)
	}
	b.WriteString("]]")
	return b.String()
}
