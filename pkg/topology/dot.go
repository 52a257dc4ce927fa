package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/awalterschulze/gographviz/ast"
	"github.com/vertex-lab/pathflood/pkg/models"
)

const (
	attrWeight    = "weight"
	attrInitiator = "initiator"
	attrTarget    = "target"
)

/*
ParseDOT() builds a topology from a DOT graph.

Edges carry their weight in the "weight" attribute (1 when missing). In a "graph"
every edge is usable in both directions, in a "digraph" only from source to
destination. Nodes become initiators with [initiator=true, target="X"]. These two
attributes are read and removed before the graph is analysed, so they can sit next to
any standard Graphviz attribute.

	graph triangle {
		A [initiator=true, target="C"]
		A -- B [weight=1]
		B -- C [weight=1]
		A -- C [weight=5]
	}
*/
func ParseDOT(src string) (Topology, error) {
	graph, err := gographviz.ParseString(src)
	if err != nil {
		return Topology{}, fmt.Errorf("failed to parse DOT: %w", err)
	}

	roles := make(map[string]role)
	extractRoles(graph.StmtList, roles)

	g := gographviz.NewGraph()
	if err := gographviz.Analyse(graph, g); err != nil {
		return Topology{}, fmt.Errorf("failed to analyze DOT: %w", err)
	}

	descriptors := make(map[string]*Descriptor)
	node := func(name string) *Descriptor {
		name = unquote(name)
		d, exists := descriptors[name]
		if !exists {
			d = &Descriptor{Name: name, Neighbours: models.NeighbourTable{}}
			descriptors[name] = d
		}
		return d
	}

	for _, n := range g.Nodes.Nodes {
		node(n.Name)
	}

	for name, r := range roles {
		d := node(name)
		if r.initiator != "" {
			d.Initiator, err = strconv.ParseBool(r.initiator)
			if err != nil {
				return Topology{}, fmt.Errorf("node %s: invalid %s %q: %w", d.Name, attrInitiator, r.initiator, err)
			}
		}
		d.Target = r.target
	}

	for _, e := range g.Edges.Edges {
		weight := 1
		if strWeight := getAttr(e.Attrs, attrWeight); strWeight != "" {
			weight, err = strconv.Atoi(strWeight)
			if err != nil {
				return Topology{}, fmt.Errorf("edge %s-%s: invalid %s %q: %w", e.Src, e.Dst, attrWeight, strWeight, err)
			}
		}

		src, dst := node(e.Src), node(e.Dst)
		src.Neighbours[dst.Name] = weight
		if !g.Directed {
			dst.Neighbours[src.Name] = weight
		}
	}

	var t Topology
	for _, d := range descriptors {
		t.Nodes = append(t.Nodes, *d)
	}

	if err := t.Validate(); err != nil {
		return Topology{}, err
	}

	t.sortNodes()
	return t, nil
}

// role holds the attributes of a node that Graphviz doesn't know.
type role struct {
	initiator string
	target    string
}

// extractRoles() removes the initiator and target attributes from the node statements
// (subgraphs included) and stores them in roles by node name.
func extractRoles(stmts ast.StmtList, roles map[string]role) {
	for i, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			s.Attrs = takeRole(unquote(string(s.NodeID.ID)), s.Attrs, roles)

		case ast.NodeStmt:
			s.Attrs = takeRole(unquote(string(s.NodeID.ID)), s.Attrs, roles)
			stmts[i] = s

		case *ast.SubGraph:
			extractRoles(s.StmtList, roles)
		}
	}
}

// takeRole() returns the attributes of the node without the initiator and target ones,
// which are stored in roles.
func takeRole(node string, attrs ast.AttrList, roles map[string]role) ast.AttrList {
	r, found := roles[node]
	kept := make(ast.AttrList, 0, len(attrs))

	for _, list := range attrs {
		alist := make(ast.AList, 0, len(list))
		for _, attr := range list {
			switch unquote(string(attr.Field)) {
			case attrInitiator:
				r.initiator = unquote(string(attr.Value))
				found = true

			case attrTarget:
				r.target = unquote(string(attr.Value))
				found = true

			default:
				alist = append(alist, attr)
			}
		}
		kept = append(kept, alist)
	}

	if found {
		roles[node] = r
	}
	return kept
}

// getAttr() returns the value of a Graphviz attribute without the surrounding quotes.
func getAttr(attrs gographviz.Attrs, key string) string {
	val, ok := attrs[gographviz.Attr(key)]
	if !ok {
		return ""
	}
	return unquote(strings.TrimSpace(val))
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
