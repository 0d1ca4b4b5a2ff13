package term

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/glossopoeia/rewrite/rewriting/histogram"
)

// Debug trace switches carried by the context. A rewrite system copies
// the flags at construction, so flipping a flag on the context only
// affects systems created afterwards.
type DebugFlags uint32

const (
	// Trace every candidate rule as it is added, simplified, and
	// oriented, including any homotopy generator it records.
	DebugAdd DebugFlags = 1 << iota
	// Trace every call to simplify, printing the rewrite steps taken.
	DebugSimplify
	// Trace the post-completion reduction of the rule set.
	DebugCompletion
)

func (f DebugFlags) Contains(flags DebugFlags) bool {
	return f&flags != 0
}

// The interning context shared by symbols and terms. Interning makes
// equality on symbols and terms a pointer comparison, which the trie
// and the reduction order both rely on. A context must outlive every
// rewrite system that references it, since rules and homotopy generator
// basepoints hold terms it owns.
//
// A context performs no synchronization of its own; share one across
// goroutines only behind external locking.
type Context struct {
	symbols map[string]*symbolNode
	terms   map[string]*termNode
	nextID  uint64

	// Debug trace switches and the stream traces are written to.
	Debug    DebugFlags
	DebugOut io.Writer

	// Distribution of child fan-out over all rule trie nodes, and over
	// trie roots only. Updated by each rewrite system at teardown.
	RuleTrieHistogram     *histogram.Histogram
	RuleTrieRootHistogram *histogram.Histogram
}

func NewContext() *Context {
	return &Context{
		symbols:               map[string]*symbolNode{},
		terms:                 map[string]*termNode{},
		DebugOut:              os.Stderr,
		RuleTrieHistogram:     histogram.New(16),
		RuleTrieRootHistogram: histogram.New(16),
	}
}

// Intern a mutable term, returning the canonical Term for its symbol
// sequence. The mutable term is copied, never retained.
func (c *Context) Intern(m *MutableTerm) Term {
	if m.IsEmpty() {
		panic("term: interning an empty term")
	}
	return c.internSymbols(m.symbols)
}

func (c *Context) internSymbols(symbols []Symbol) Term {
	var key strings.Builder
	for _, s := range symbols {
		fmt.Fprintf(&key, "%d,", s.node.id)
	}

	if node, ok := c.terms[key.String()]; ok {
		return Term{node}
	}
	owned := make([]Symbol, len(symbols))
	copy(owned, symbols)
	node := &termNode{id: c.fresh(), symbols: owned}
	c.terms[key.String()] = node
	return Term{node}
}

// Intern a member name symbol.
func (c *Context) NameSymbol(name string) Symbol {
	return c.intern(fmt.Sprintf("n;%s", name), func() *symbolNode {
		return &symbolNode{kind: KindName, name: name}
	})
}

// Intern a protocol symbol.
func (c *Context) ProtocolSymbol(proto string) Symbol {
	return c.intern(fmt.Sprintf("p;%s", proto), func() *symbolNode {
		return &symbolNode{kind: KindProtocol, protocol: proto}
	})
}

// Intern an associated type symbol for the given protocol and member
// name.
func (c *Context) AssociatedTypeSymbol(proto, name string) Symbol {
	return c.intern(fmt.Sprintf("a;%s;%s", proto, name), func() *symbolNode {
		return &symbolNode{kind: KindAssociatedType, protocol: proto, name: name}
	})
}

// Intern a generic parameter symbol with the given declaration depth
// and index.
func (c *Context) GenericParamSymbol(depth, index int) Symbol {
	return c.intern(fmt.Sprintf("g;%d;%d", depth, index), func() *symbolNode {
		return &symbolNode{kind: KindGenericParam, depth: depth, index: index}
	})
}

// Intern a layout constraint symbol.
func (c *Context) LayoutSymbol(constraint string) Symbol {
	return c.intern(fmt.Sprintf("l;%s", constraint), func() *symbolNode {
		return &symbolNode{kind: KindLayout, name: constraint}
	})
}

// Intern a superclass symbol with the given head type name and
// substitution terms.
func (c *Context) SuperclassSymbol(name string, substitutions []Term) Symbol {
	return c.intern(c.substitutedKey("s", name, substitutions), func() *symbolNode {
		owned := make([]Term, len(substitutions))
		copy(owned, substitutions)
		return &symbolNode{kind: KindSuperclass, name: name, substitutions: owned}
	})
}

// Intern a concrete type symbol with the given head type name and
// substitution terms.
func (c *Context) ConcreteTypeSymbol(name string, substitutions []Term) Symbol {
	return c.intern(c.substitutedKey("c", name, substitutions), func() *symbolNode {
		owned := make([]Term, len(substitutions))
		copy(owned, substitutions)
		return &symbolNode{kind: KindConcreteType, name: name, substitutions: owned}
	})
}

func (c *Context) substitutedKey(tag, name string, substitutions []Term) string {
	var key strings.Builder
	fmt.Fprintf(&key, "%s;%s", tag, name)
	for _, sub := range substitutions {
		fmt.Fprintf(&key, ";%d", sub.node.id)
	}
	return key.String()
}

func (c *Context) intern(key string, build func() *symbolNode) Symbol {
	if node, ok := c.symbols[key]; ok {
		return Symbol{node}
	}
	node := build()
	node.id = c.fresh()
	c.symbols[key] = node
	return Symbol{node}
}

func (c *Context) fresh() uint64 {
	c.nextID++
	return c.nextID
}
