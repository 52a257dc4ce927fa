/*
The topology package loads the static descriptors of the nodes: for each node its
neighbour table and its role. A topology can come from a directory with one YAML
descriptor per node, from a single YAML file listing every node, or from a DOT graph.
*/
package topology

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/pathflood/pkg/models"
)

// Descriptor is the static configuration of one node.
type Descriptor struct {
	Name string `yaml:"name"`

	// whether the node starts a search for Target
	Initiator bool   `yaml:"initiator"`
	Target    string `yaml:"target,omitempty"`

	Neighbours models.NeighbourTable `yaml:"neighbours"`
}

// Validate() returns the appropriate error if the descriptor can't start a node.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return models.ErrEmptyNodeName
	}

	if err := d.Neighbours.Validate(); err != nil {
		return fmt.Errorf("node %s: %w", d.Name, err)
	}

	if _, exists := d.Neighbours[d.Name]; exists {
		return fmt.Errorf("%w: node %s", ErrSelfLoop, d.Name)
	}

	if d.Initiator && d.Target == "" {
		return fmt.Errorf("%w: node %s", ErrMissingTarget, d.Name)
	}
	return nil
}

// Topology is the set of descriptors of a graph.
type Topology struct {
	Nodes []Descriptor `yaml:"nodes"`
}

// Validate() validates every descriptor and checks that names are unique.
func (t Topology) Validate() error {
	if len(t.Nodes) == 0 {
		return ErrEmptyTopology
	}

	names := mapset.NewThreadUnsafeSetWithSize[string](len(t.Nodes))
	for _, node := range t.Nodes {
		if err := node.Validate(); err != nil {
			return err
		}

		if !names.Add(node.Name) {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, node.Name)
		}
	}
	return nil
}

// Names() returns the names of the nodes in lexicographic order.
func (t Topology) Names() []string {
	names := make([]string, len(t.Nodes))
	for i, node := range t.Nodes {
		names[i] = node.Name
	}

	slices.Sort(names)
	return names
}

// Node() returns the descriptor with the specified name.
func (t Topology) Node(name string) (Descriptor, bool) {
	for _, node := range t.Nodes {
		if node.Name == name {
			return node, true
		}
	}
	return Descriptor{}, false
}

// Initiators() returns the descriptors of the nodes that start a search.
func (t Topology) Initiators() []Descriptor {
	var initiators []Descriptor
	for _, node := range t.Nodes {
		if node.Initiator {
			initiators = append(initiators, node)
		}
	}
	return initiators
}

// Dangling() returns the edges "from->to" whose destination has no descriptor.
// Requests sent along them are lost.
func (t Topology) Dangling() []string {
	names := mapset.NewThreadUnsafeSet(t.Names()...)

	var dangling []string
	for _, node := range t.Nodes {
		for _, neighbour := range node.Neighbours.Names() {
			if !names.Contains(neighbour) {
				dangling = append(dangling, node.Name+"->"+neighbour)
			}
		}
	}

	slices.Sort(dangling)
	return dangling
}

// sortNodes() sorts the descriptors by name.
func (t *Topology) sortNodes() {
	slices.SortFunc(t.Nodes, func(a, b Descriptor) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})
}

//---------------------------------ERROR-CODES---------------------------------

var ErrEmptyTopology = errors.New("topology has no nodes")
var ErrDuplicateNode = errors.New("node described more than once")
var ErrSelfLoop = errors.New("node lists itself as a neighbour")
var ErrMissingTarget = errors.New("initiator has no target")
var ErrUnsupportedFormat = errors.New("unsupported topology format")
