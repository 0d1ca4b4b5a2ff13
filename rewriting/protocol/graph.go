package protocol

import (
	"strings"

	"github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A protocol declaration as handed in by the frontend: a name together
// with the names of the protocols it directly inherits from. The graph
// computes everything else.
type Decl struct {
	Name     string
	Inherits []string
}

type node struct {
	// All protocols reachable through inheritance, not including the
	// protocol itself.
	inherited *set.Set[string]
	// Length of the longest inheritance chain below this protocol.
	depth int
}

// The protocol inheritance relation, closed under transitivity, together
// with a linear order on protocols that refines it. The graph is built
// once by the frontend and handed to the rewrite system by value; it is
// never mutated afterwards.
//
// The linear order is what makes the reduction order on terms total: a
// protocol always precedes every protocol it inherits from, and
// unrelated protocols of equal depth are ordered by name.
type Graph struct {
	nodes map[string]*node
}

// Build the graph from a list of declarations, computing the transitive
// inheritance closure and the depth of every protocol. Inheritance
// cycles are invalid input and trip the visit.
func NewGraph(decls []Decl) *Graph {
	direct := map[string][]string{}
	for _, d := range decls {
		direct[d.Name] = d.Inherits
	}

	g := &Graph{nodes: map[string]*node{}}
	visiting := map[string]bool{}

	var visit func(name string) *node
	visit = func(name string) *node {
		if n, ok := g.nodes[name]; ok {
			return n
		}
		if visiting[name] {
			panic("protocol: inheritance cycle through " + name)
		}
		visiting[name] = true

		n := &node{inherited: set.New[string](len(direct[name]))}
		for _, parent := range direct[name] {
			pn := visit(parent)
			n.inherited.Insert(parent)
			n.inherited.InsertSet(pn.inherited)
			if pn.depth+1 > n.depth {
				n.depth = pn.depth + 1
			}
		}

		delete(visiting, name)
		g.nodes[name] = n
		return n
	}

	for name := range direct {
		visit(name)
	}
	return g
}

// True if the graph has a declaration for the named protocol.
func (g *Graph) Known(name string) bool {
	if g == nil {
		return false
	}
	_, ok := g.nodes[name]
	return ok
}

// The names of all declared protocols, sorted.
func (g *Graph) Names() []string {
	if g == nil {
		return nil
	}
	names := maps.Keys(g.nodes)
	slices.Sort(names)
	return names
}

// All protocols the named protocol transitively inherits from, not
// including itself. Unknown protocols inherit nothing.
func (g *Graph) Inherited(name string) *set.Set[string] {
	if g != nil {
		if n, ok := g.nodes[name]; ok {
			return n.inherited
		}
	}
	return set.New[string](0)
}

// True if name transitively inherits from other.
func (g *Graph) Inherits(name, other string) bool {
	return g.Inherited(name).Contains(other)
}

// Length of the longest inheritance chain below the named protocol.
// Unknown protocols have depth zero.
func (g *Graph) Depth(name string) int {
	if g != nil {
		if n, ok := g.nodes[name]; ok {
			return n.depth
		}
	}
	return 0
}

// Compare two protocols in the linear order. Deeper protocols come
// first, so a protocol precedes everything it inherits from; ties are
// broken by name. Works on a nil graph, where every protocol has depth
// zero and the order degenerates to name order.
func (g *Graph) Compare(a, b string) int {
	if a == b {
		return 0
	}
	if d := g.Depth(b) - g.Depth(a); d != 0 {
		return d
	}
	return strings.Compare(a, b)
}
