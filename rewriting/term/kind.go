package term

// Every symbol in the rewriting alphabet has a kind. The kind decides
// which positions the symbol may legally occupy inside a rule, how the
// symbol participates in the reduction order, and which payload fields
// of the symbol are meaningful.
type Kind int

const (
	// An unresolved member name. Name symbols only appear while the
	// frontend is still lowering requirements; a completed rule set
	// rewrites them all away, which is why they are the largest kind
	// in the reduction order among the structural symbols.
	KindName Kind = iota + 1
	// A protocol, identified by its declared name. Protocol symbols
	// anchor a term to a protocol's requirement signature and may only
	// appear at the ends of a rule side.
	KindProtocol
	// An associated type member of a protocol, identified by the owning
	// protocol and the member name.
	KindAssociatedType
	// A generic parameter, identified by its declaration depth and
	// index. Generic parameters root a term and never appear past
	// position zero.
	KindGenericParam
	// A layout constraint, such as a class bound. Layout symbols are
	// properties of whatever precedes them, so they only appear at the
	// last position of a left hand side.
	KindLayout
	// A superclass bound together with the substitution terms for the
	// class's own generic parameters.
	KindSuperclass
	// A concrete type bound together with the substitution terms for
	// the type's generic parameters.
	KindConcreteType
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindProtocol:
		return "protocol"
	case KindAssociatedType:
		return "assoc"
	case KindGenericParam:
		return "param"
	case KindLayout:
		return "layout"
	case KindSuperclass:
		return "superclass"
	case KindConcreteType:
		return "concrete"
	default:
		panic("term: invalid symbol kind encountered.")
	}
}

// Rank of the kind inside the reduction order. Protocols are smallest
// so that normal forms prefer protocol-anchored spellings; property-like
// symbols sort after all the structural ones.
func (k Kind) order() int {
	switch k {
	case KindProtocol:
		return 0
	case KindAssociatedType:
		return 1
	case KindGenericParam:
		return 2
	case KindName:
		return 3
	case KindLayout:
		return 4
	case KindSuperclass:
		return 5
	case KindConcreteType:
		return 6
	default:
		panic("term: invalid symbol kind encountered.")
	}
}
