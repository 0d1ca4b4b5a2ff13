package rewriting

import (
	"fmt"

	"github.com/glossopoeia/rewrite/rewriting/term"
)

// An oriented rewrite rule. The left hand side is strictly greater than
// the right hand side in the reduction order, so applying the rule
// always shrinks a term. Rules are identified by their position in the
// system's rule table; the table is append-only and ids are never
// reused, which keeps every id captured in a rewrite path valid for the
// life of the system.
//
// Deleted rules stay in the table as tombstones. The trie still maps
// their left hand sides, and lookups filter them out by flag.
type Rule struct {
	lhs     term.Term
	rhs     term.Term
	deleted bool
}

func (r *Rule) LHS() term.Term {
	return r.lhs
}

func (r *Rule) RHS() term.Term {
	return r.rhs
}

func (r *Rule) IsDeleted() bool {
	return r.deleted
}

// Tombstone the rule. Only legal once, and only once the rule set is
// confluent; the system's post-completion reduction is the sole caller.
func (r *Rule) MarkDeleted() {
	if r.deleted {
		panic("rewriting: rule deleted twice")
	}
	r.deleted = true
}

func (r *Rule) String() string {
	if r.deleted {
		return fmt.Sprintf("%s => %s [deleted]", r.lhs, r.rhs)
	}
	return fmt.Sprintf("%s => %s", r.lhs, r.rhs)
}
