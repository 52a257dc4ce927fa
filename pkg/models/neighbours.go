package models

import (
	"fmt"
	"slices"
)

// NeighbourTable maps each neighbour of a node to the weight of the edge that leads to it.
// It's fixed for the whole run and read-only after construction.
type NeighbourTable map[string]int

// Validate() returns the appropriate error if a neighbour name is empty or a weight is not positive.
func (t NeighbourTable) Validate() error {
	for name, weight := range t {
		if name == "" {
			return ErrEmptyNodeName
		}

		if weight <= 0 {
			return fmt.Errorf("%w: neighbour %q has weight %d", ErrInvalidWeight, name, weight)
		}
	}
	return nil
}

// Names() returns the neighbours in lexicographic order.
func (t NeighbourTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

// Weight() returns the weight of the edge to the neighbour, and whether it exists.
func (t NeighbourTable) Weight(neighbour string) (int, bool) {
	weight, exists := t[neighbour]
	return weight, exists
}

// Clone() returns a copy of the table.
func (t NeighbourTable) Clone() NeighbourTable {
	clone := make(NeighbourTable, len(t))
	for name, weight := range t {
		clone[name] = weight
	}
	return clone
}
