package term

import (
	"fmt"
	"strings"

	"github.com/glossopoeia/rewrite/rewriting/protocol"
)

type symbolNode struct {
	id   uint64
	kind Kind

	// The member name for Name and AssociatedType symbols, the
	// constraint name for Layout symbols, and the head type name for
	// Superclass and ConcreteType symbols.
	name string
	// The owning protocol for Protocol and AssociatedType symbols.
	protocol string
	// Declaration coordinates for GenericParam symbols.
	depth int
	index int
	// Substitution terms for Superclass and ConcreteType symbols.
	substitutions []Term
}

// An interned symbol of the rewriting alphabet. Symbols are created
// through a Context, which guarantees that two symbols built from the
// same payload are equal as Go values, so == is structural equality.
// The zero Symbol is invalid and only appears before interning.
type Symbol struct {
	node *symbolNode
}

func (s Symbol) Kind() Kind {
	return s.node.kind
}

// The name payload of the symbol; empty for kinds that carry none.
func (s Symbol) Name() string {
	return s.node.name
}

// The owning protocol of a Protocol or AssociatedType symbol.
func (s Symbol) Protocol() string {
	return s.node.protocol
}

// Declaration coordinates of a GenericParam symbol.
func (s Symbol) GenericParam() (depth int, index int) {
	return s.node.depth, s.node.index
}

// The substitution terms embedded in a Superclass or ConcreteType
// symbol. Callers must not mutate the returned slice.
func (s Symbol) Substitutions() []Term {
	return s.node.substitutions
}

func (s Symbol) IsSuperclassOrConcreteType() bool {
	return s.node.kind == KindSuperclass || s.node.kind == KindConcreteType
}

// Compare two symbols in the linear order used to orient rules: first
// by kind rank, then by the kind's payload. Protocols are ordered by
// the graph's protocol order so that the term order stays total.
func (s Symbol) Compare(other Symbol, g *protocol.Graph) int {
	if s == other {
		return 0
	}
	if d := s.node.kind.order() - other.node.kind.order(); d != 0 {
		return d
	}
	switch s.node.kind {
	case KindName, KindLayout:
		return strings.Compare(s.node.name, other.node.name)
	case KindProtocol:
		return g.Compare(s.node.protocol, other.node.protocol)
	case KindAssociatedType:
		if d := g.Compare(s.node.protocol, other.node.protocol); d != 0 {
			return d
		}
		return strings.Compare(s.node.name, other.node.name)
	case KindGenericParam:
		if d := s.node.depth - other.node.depth; d != 0 {
			return d
		}
		return s.node.index - other.node.index
	case KindSuperclass, KindConcreteType:
		if d := strings.Compare(s.node.name, other.node.name); d != 0 {
			return d
		}
		if d := len(s.node.substitutions) - len(other.node.substitutions); d != 0 {
			return d
		}
		for i, sub := range s.node.substitutions {
			if d := sub.Compare(other.node.substitutions[i], g); d != 0 {
				return d
			}
		}
		return 0
	default:
		panic("term: invalid symbol kind encountered.")
	}
}

// For a Superclass or ConcreteType symbol, apply f to every embedded
// substitution term and intern a symbol carrying the results. Any other
// kind is returned unchanged. The transform never mutates the receiver.
func (s Symbol) TransformConcreteSubstitutions(f func(Term) Term, ctx *Context) Symbol {
	if !s.IsSuperclassOrConcreteType() {
		return s
	}

	changed := false
	transformed := make([]Term, len(s.node.substitutions))
	for i, sub := range s.node.substitutions {
		transformed[i] = f(sub)
		if transformed[i] != sub {
			changed = true
		}
	}
	if !changed {
		return s
	}

	if s.node.kind == KindSuperclass {
		return ctx.SuperclassSymbol(s.node.name, transformed)
	}
	return ctx.ConcreteTypeSymbol(s.node.name, transformed)
}

func (s Symbol) String() string {
	switch s.node.kind {
	case KindName:
		return s.node.name
	case KindProtocol:
		return fmt.Sprintf("[%s]", s.node.protocol)
	case KindAssociatedType:
		return fmt.Sprintf("[%s:%s]", s.node.protocol, s.node.name)
	case KindGenericParam:
		return fmt.Sprintf("τ_%d_%d", s.node.depth, s.node.index)
	case KindLayout:
		return fmt.Sprintf("[layout: %s]", s.node.name)
	case KindSuperclass:
		return fmt.Sprintf("[superclass: %s%s]", s.node.name, substitutionString(s.node.substitutions))
	case KindConcreteType:
		return fmt.Sprintf("[concrete: %s%s]", s.node.name, substitutionString(s.node.substitutions))
	default:
		panic("term: invalid symbol kind encountered.")
	}
}

func substitutionString(subs []Term) string {
	if len(subs) == 0 {
		return ""
	}
	parts := make([]string, len(subs))
	for i, sub := range subs {
		parts[i] = sub.String()
	}
	return fmt.Sprintf("<%s>", strings.Join(parts, "; "))
}
