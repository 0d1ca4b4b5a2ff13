package rewriting

import (
	"fmt"

	"github.com/glossopoeia/rewrite/rewriting/term"
)

// Audit the structural invariants of every non-deleted rule: which
// symbol kinds may occupy which positions, and that both sides are
// anchored to the same protocols. Any violation is a programmer error
// in the engine or its caller; the offending rule and the whole system
// are dumped before panicking.
//
// The absence of Name symbols on right hand sides only holds when the
// input requirements were themselves well-formed, so that check is
// skipped when AssumeValidInput is off; the frontend is then expected
// to have diagnosed the malformed requirement already.
func (s *RewriteSystem) Verify() {
	for i := range s.rules {
		rule := &s.rules[i]
		if rule.IsDeleted() {
			continue
		}

		lhs := rule.LHS().Symbols()
		rhs := rule.RHS().Symbols()

		for index, symbol := range lhs {
			if index != len(lhs)-1 {
				s.assertRule(rule, symbol.Kind() != term.KindLayout,
					"layout symbol before the end of the left hand side")
				s.assertRule(rule, !symbol.IsSuperclassOrConcreteType(),
					"superclass or concrete type symbol before the end of the left hand side")
			}

			if index != 0 {
				s.assertRule(rule, symbol.Kind() != term.KindGenericParam,
					"generic parameter symbol past the start of the left hand side")
			}

			if index != 0 && index != len(lhs)-1 {
				s.assertRule(rule, symbol.Kind() != term.KindProtocol,
					"protocol symbol in the middle of the left hand side")
			}
		}

		for index, symbol := range rhs {
			if s.AssumeValidInput {
				s.assertRule(rule, symbol.Kind() != term.KindName,
					"name symbol on the right hand side")
			}

			s.assertRule(rule, symbol.Kind() != term.KindLayout,
				"layout symbol on the right hand side")
			s.assertRule(rule, !symbol.IsSuperclassOrConcreteType(),
				"superclass or concrete type symbol on the right hand side")

			if index != 0 {
				s.assertRule(rule, symbol.Kind() != term.KindGenericParam,
					"generic parameter symbol past the start of the right hand side")
				s.assertRule(rule, symbol.Kind() != term.KindProtocol,
					"protocol symbol past the start of the right hand side")
			}
		}

		s.assertRule(rule, rule.LHS().RootProtocols().Equal(rule.RHS().RootProtocols()),
			"rule sides anchored to different protocols")
	}
}

func (s *RewriteSystem) assertRule(rule *Rule, ok bool, problem string) {
	if ok {
		return
	}
	out := s.ctx.DebugOut
	fmt.Fprintf(out, "&&& Malformed rewrite rule: %s\n", rule)
	fmt.Fprintf(out, "&&& %s\n\n", problem)
	s.Dump(out)
	panic("rewriting: malformed rewrite rule: " + problem)
}
