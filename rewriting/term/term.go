package term

import (
	"strings"

	"github.com/hashicorp/go-set/v3"
	"github.com/rjNemo/underscore"

	"github.com/glossopoeia/rewrite/rewriting/protocol"
)

// An interned term: a non-empty ordered sequence of symbols, hash-consed
// through a Context so that equal terms are equal as Go values. Interned
// terms are immutable and shared; rules and homotopy generator
// basepoints always hold interned terms.
type Term struct {
	node *termNode
}

type termNode struct {
	id      uint64
	symbols []Symbol
}

func (t Term) Len() int {
	return len(t.node.symbols)
}

// The symbol sequence backing the term. Callers must not mutate the
// returned slice.
func (t Term) Symbols() []Symbol {
	return t.node.symbols
}

func (t Term) Symbol(i int) Symbol {
	return t.node.symbols[i]
}

// Copy the term into a fresh mutable term.
func (t Term) Mutable() *MutableTerm {
	symbols := make([]Symbol, len(t.node.symbols))
	copy(symbols, t.node.symbols)
	return &MutableTerm{symbols: symbols}
}

// Compare two terms in the reduction order; see CompareSymbols.
func (t Term) Compare(other Term, g *protocol.Graph) int {
	if t == other {
		return 0
	}
	return CompareSymbols(t.node.symbols, other.node.symbols, g)
}

// The protocols the term is anchored to; see MutableTerm.RootProtocols.
func (t Term) RootProtocols() *set.Set[string] {
	return rootProtocols(t.node.symbols)
}

func (t Term) String() string {
	return symbolString(t.node.symbols)
}

// An owned, mutable term. Mutable terms exist only at the edges of the
// system: while a term is being simplified, and while a candidate rule
// is being assembled. They are interned on commit.
type MutableTerm struct {
	symbols []Symbol
}

// Create a mutable term from the given symbols.
func NewMutableTerm(symbols ...Symbol) *MutableTerm {
	owned := make([]Symbol, len(symbols))
	copy(owned, symbols)
	return &MutableTerm{symbols: owned}
}

func (m *MutableTerm) Len() int {
	return len(m.symbols)
}

func (m *MutableTerm) IsEmpty() bool {
	return len(m.symbols) == 0
}

// The symbol sequence backing the term. Callers must not mutate the
// returned slice; it is invalidated by RewriteSubTerm and Append.
func (m *MutableTerm) Symbols() []Symbol {
	return m.symbols
}

func (m *MutableTerm) Symbol(i int) Symbol {
	return m.symbols[i]
}

func (m *MutableTerm) Clone() *MutableTerm {
	return NewMutableTerm(m.symbols...)
}

// Append all the symbols of an interned term.
func (m *MutableTerm) Append(t Term) {
	m.symbols = append(m.symbols, t.Symbols()...)
}

// Append a single symbol.
func (m *MutableTerm) Add(s Symbol) {
	m.symbols = append(m.symbols, s)
}

// Replace the symbols in [from, to) with the symbols of the replacement
// term. This is the single primitive every rewrite step bottoms out in.
func (m *MutableTerm) RewriteSubTerm(from, to int, replacement Term) {
	if from < 0 || to < from || to > len(m.symbols) {
		panic("term: rewrite range out of bounds")
	}
	rest := make([]Symbol, len(m.symbols)-to)
	copy(rest, m.symbols[to:])
	m.symbols = append(m.symbols[:from], replacement.Symbols()...)
	m.symbols = append(m.symbols, rest...)
}

// Compare two terms in the reduction order; see CompareSymbols.
func (m *MutableTerm) Compare(other *MutableTerm, g *protocol.Graph) int {
	return CompareSymbols(m.symbols, other.symbols, g)
}

// The protocols the term is anchored to: the owning protocol of a
// leading Protocol or AssociatedType symbol, and nothing otherwise.
// Rules must preserve this set between their two sides.
func (m *MutableTerm) RootProtocols() *set.Set[string] {
	return rootProtocols(m.symbols)
}

func (m *MutableTerm) String() string {
	return symbolString(m.symbols)
}

// Compare two symbol sequences in the reduction order: shortlex over
// the symbol order. A longer term is always greater, and equal lengths
// fall back to the leftmost differing symbol. Shortlex over a linear
// symbol order is well-founded and stable under appending a common
// prefix or suffix, which is exactly what orienting rewrite rules
// requires.
func CompareSymbols(a, b []Symbol, g *protocol.Graph) int {
	if d := len(a) - len(b); d != 0 {
		return d
	}
	for i := range a {
		if d := a[i].Compare(b[i], g); d != 0 {
			return d
		}
	}
	return 0
}

func rootProtocols(symbols []Symbol) *set.Set[string] {
	roots := set.New[string](1)
	if len(symbols) == 0 {
		return roots
	}
	switch first := symbols[0]; first.Kind() {
	case KindProtocol, KindAssociatedType:
		roots.Insert(first.Protocol())
	}
	return roots
}

func symbolString(symbols []Symbol) string {
	parts := underscore.Map(symbols, func(s Symbol) string { return s.String() })
	return strings.Join(parts, ".")
}
