package rewriting

import (
	"fmt"

	"github.com/glossopoeia/rewrite/rewriting/term"
)

// Delete any rule whose left hand side can be rewritten by some other
// rule, and reduce the right hand sides of all remaining rules as much
// as possible. Every right hand side that changes spawns a replacement
// rule and a homotopy generator relating the old rule to the new one,
// so the rewriting graph loses no information.
//
// Must run after the completion procedure: deleting rules is only sound
// once the system is confluent.
func (s *RewriteSystem) SimplifyRewriteSystem() {
	for ruleID, end := 0, len(s.rules); ruleID < end; ruleID++ {
		rule := s.GetRule(ruleID)
		if rule.IsDeleted() {
			continue
		}

		// First, see if some other rule rewrites a subterm of this
		// rule's left hand side. A rule does not obsolete itself, and
		// deleted rules obsolete nothing.
		lhs := rule.LHS()
		for from := 0; from < lhs.Len(); from++ {
			otherRuleID, ok := s.ruleTrie.Find(lhs.Symbols()[from:])
			if !ok {
				continue
			}
			if otherRuleID == ruleID {
				continue
			}
			if s.GetRule(otherRuleID).IsDeleted() {
				continue
			}

			if s.debug.Contains(term.DebugCompletion) {
				fmt.Fprintf(s.ctx.DebugOut, "$ Deleting rule %s because its left hand side contains %s\n",
					rule, s.GetRule(otherRuleID))
			}

			rule.MarkDeleted()
			break
		}

		if rule.IsDeleted() {
			continue
		}

		// Now try to reduce the right hand side.
		var rhsPath RewritePath
		rhs := rule.RHS().Mutable()
		if !s.Simplify(rhs, &rhsPath) {
			continue
		}

		// The old rule won't apply anymore once the replacement exists.
		rule.MarkDeleted()

		newRuleID := len(s.rules)
		newRHS := s.ctx.Intern(rhs)
		s.rules = append(s.rules, Rule{lhs: lhs, rhs: newRHS})

		oldRuleID, ok := s.ruleTrie.Insert(lhs.Symbols(), newRuleID)
		if !ok || oldRuleID != ruleID {
			panic("rewriting: replacement rule's left hand side was not indexed")
		}

		// Produce a loop at the simplified rhs: undo the rhs
		// simplification, run the old rule backwards to its lhs, then
		// run the new rule forwards.
		var loop RewritePath
		rhsPath.Invert()
		loop.Append(rhsPath)
		loop.Add(RewriteStep{Offset: 0, RuleID: ruleID, Inverse: true})
		loop.Add(RewriteStep{Offset: 0, RuleID: newRuleID, Inverse: false})

		if s.debug.Contains(term.DebugCompletion) {
			fmt.Fprintf(s.ctx.DebugOut, "$ Right hand side simplification recorded a loop: ")
			loop.Dump(s.ctx.DebugOut, newRHS.Mutable(), s)
			fmt.Fprintf(s.ctx.DebugOut, "\n")
		}

		s.generators = append(s.generators, HomotopyGenerator{newRHS, loop})
	}
}
