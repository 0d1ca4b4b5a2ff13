package rewriting

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/glossopoeia/rewrite/rewriting/protocol"
	"github.com/glossopoeia/rewrite/rewriting/term"
	"github.com/glossopoeia/rewrite/rewriting/trie"
)

// A candidate rule as supplied to Initialize: two sides of a
// requirement, not yet simplified or oriented.
type RulePair struct {
	LHS *term.MutableTerm
	RHS *term.MutableTerm
}

// A term rewriting system over the requirement alphabet. The system
// owns an append-only table of oriented rules, a prefix trie indexing
// their left hand sides, and the list of homotopy generators recorded
// along the way. A completion procedure drives it by feeding candidate
// rules into AddRule and, once the system is confluent, calling
// SimplifyRewriteSystem.
//
// A system is single-threaded; it holds a non-owning reference to an
// interning context that must outlive it.
type RewriteSystem struct {
	ctx   *term.Context
	debug term.DebugFlags

	protos *protocol.Graph

	rules      []Rule
	ruleTrie   *trie.Trie
	generators []HomotopyGenerator

	// When false, structural checks that only hold for well-formed
	// input requirements are skipped; the frontend is expected to have
	// diagnosed the malformed requirement already.
	AssumeValidInput bool

	// Invoked for every rule that is actually added, so downstream
	// components can watch for associated types merged by the rule.
	CheckMergedAssociatedType func(lhs, rhs term.Term)
}

func NewRewriteSystem(ctx *term.Context) *RewriteSystem {
	return &RewriteSystem{
		ctx:              ctx,
		debug:            ctx.Debug,
		ruleTrie:         trie.New(trie.MatchShortest),
		AssumeValidInput: true,
	}
}

// Release the system's bookkeeping, exporting the trie fan-out
// distributions into the context's histograms. Call once, when the
// system is no longer needed.
func (s *RewriteSystem) Close() {
	s.ruleTrie.UpdateHistograms(s.ctx.RuleTrieHistogram, s.ctx.RuleTrieRootHistogram)
}

// Populate the system with the frontend's initial rule set and the
// protocol graph used by the reduction order. Initial rules carry no
// derivation paths; only rules derived later by completion do.
func (s *RewriteSystem) Initialize(rules []RulePair, graph *protocol.Graph) {
	s.protos = graph

	for _, pair := range rules {
		s.AddRule(pair.LHS, pair.RHS, nil)
	}
}

func (s *RewriteSystem) Context() *term.Context {
	return s.ctx
}

func (s *RewriteSystem) GetRule(id int) *Rule {
	return &s.rules[id]
}

// The rule table. Callers must not mutate the returned slice, and must
// not hold it across a call that may add rules.
func (s *RewriteSystem) Rules() []Rule {
	return s.rules
}

// The homotopy generators recorded so far, in recording order. Callers
// must not mutate the returned slice.
func (s *RewriteSystem) HomotopyGenerators() []HomotopyGenerator {
	return s.generators
}

// Normalize the terms embedded in a superclass or concrete type symbol
// against the current rule set, re-interning the symbol if anything
// changed. Symbols of other kinds pass through untouched.
func (s *RewriteSystem) SimplifySubstitutions(symbol term.Symbol) term.Symbol {
	return symbol.TransformConcreteSubstitutions(func(t term.Term) term.Term {
		mutable := t.Mutable()
		if !s.Simplify(mutable, nil) {
			return t
		}
		return s.ctx.Intern(mutable)
	}, s.ctx)
}

// Add a rewrite rule, returning true if the new rule was non-trivial.
//
// Both sides are first simplified against the existing rules; if they
// then agree, the rule is redundant and discarded. Otherwise the pair
// is oriented by the reduction order, interned, appended to the rule
// table, and indexed in the trie.
//
// If path is non-nil, the rule is a consequence of existing rules and
// path records the derivation from lhs to rhs; a homotopy generator is
// recorded whether or not the rule turns out trivial, closing the
// derivation into a loop.
func (s *RewriteSystem) AddRule(lhs, rhs *term.MutableTerm, path *RewritePath) bool {
	if lhs.IsEmpty() || rhs.IsEmpty() {
		panic("rewriting: adding a rule with an empty side")
	}

	if s.debug.Contains(term.DebugAdd) {
		fmt.Fprintf(s.ctx.DebugOut, "# Adding rule %s == %s\n\n", lhs, rhs)
	}

	// Simplify both sides as much as possible with the rules we have so
	// far. This avoids unnecessary work in the completion procedure.
	var lhsPath, rhsPath RewritePath
	s.Simplify(lhs, &lhsPath)
	s.Simplify(rhs, &rhsPath)

	var loop RewritePath
	if path != nil {
		// Produce a path from the simplified lhs to the simplified rhs:
		// first undo the lhs simplification to reach the original lhs,
		// then follow the caller's derivation to the original rhs, then
		// simplify down to the simplified rhs.
		lhsPath.Invert()
		loop.Append(lhsPath)
		loop.Append(*path)
		loop.Append(rhsPath)
	}

	result := lhs.Compare(rhs, s.protos)
	if result == 0 {
		// The two sides are already equivalent; if the rule was derived
		// from existing rules, the derivation is itself a loop worth
		// remembering.
		if path != nil {
			basepoint := s.ctx.Intern(lhs)
			s.generators = append(s.generators, HomotopyGenerator{basepoint, loop})

			if s.debug.Contains(term.DebugAdd) {
				fmt.Fprintf(s.ctx.DebugOut, "## Recorded trivial loop at %s: ", basepoint)
				loop.Dump(s.ctx.DebugOut, basepoint.Mutable(), s)
				fmt.Fprintf(s.ctx.DebugOut, "\n\n")
			}
		}

		return false
	}

	// Orient the two terms so that the left hand side is greater.
	if result < 0 {
		lhs, rhs = rhs, lhs
		loop.Invert()
	}

	if lhs.Compare(rhs, s.protos) <= 0 {
		panic("rewriting: rule is not oriented by the reduction order")
	}

	if s.debug.Contains(term.DebugAdd) {
		fmt.Fprintf(s.ctx.DebugOut, "## Simplified and oriented rule %s => %s\n\n", lhs, rhs)
	}

	newRuleID := len(s.rules)

	uniquedLHS := s.ctx.Intern(lhs)
	uniquedRHS := s.ctx.Intern(rhs)
	s.rules = append(s.rules, Rule{lhs: uniquedLHS, rhs: uniquedRHS})

	if path != nil {
		// The loop so far runs from the simplified lhs to the simplified
		// rhs; applying the new rule in reverse closes it.
		loop.Add(RewriteStep{Offset: 0, RuleID: newRuleID, Inverse: true})
		s.generators = append(s.generators, HomotopyGenerator{uniquedLHS, loop})

		if s.debug.Contains(term.DebugAdd) {
			fmt.Fprintf(s.ctx.DebugOut, "## Recorded non-trivial loop at %s: ", uniquedLHS)
			loop.Dump(s.ctx.DebugOut, uniquedLHS.Mutable(), s)
			fmt.Fprintf(s.ctx.DebugOut, "\n\n")
		}
	}

	if oldRuleID, ok := s.ruleTrie.Insert(uniquedLHS.Symbols(), newRuleID); ok {
		// The pre-simplification above is supposed to leave the lhs
		// irreducible, so an occupied key means the engine or the
		// reduction order is broken. Replay the simplification with
		// tracing on and give up.
		out := s.ctx.DebugOut
		fmt.Fprintf(out, "Duplicate rewrite rule!\n")
		fmt.Fprintf(out, "Old rule #%d: %s\n", oldRuleID, s.GetRule(oldRuleID))
		fmt.Fprintf(out, "Trying to replay what happened when I simplified this term:\n")
		s.debug |= term.DebugSimplify
		replay := uniquedLHS.Mutable()
		s.Simplify(replay, nil)

		panic("rewriting: duplicate rewrite rule")
	}

	if s.CheckMergedAssociatedType != nil {
		s.CheckMergedAssociatedType(uniquedLHS, uniquedRHS)
	}

	// Tell the caller that we added a new rule.
	return true
}

// Reduce a term to normal form by applying rewrite rules until fixed
// point, scanning left to right and restarting from the beginning after
// every hit. Returns whether the term changed.
//
// If path is non-nil, the rewrite steps taken are appended to it; the
// path ends up empty exactly when the term was already irreducible.
func (s *RewriteSystem) Simplify(t *term.MutableTerm, path *RewritePath) bool {
	changed := false

	var original *term.MutableTerm
	var forDebug RewritePath
	if s.debug.Contains(term.DebugSimplify) {
		original = t.Clone()
		if path == nil {
			path = &forDebug
		}
	}

	for {
		tryAgain := false

		for from := 0; from < t.Len(); from++ {
			ruleID, ok := s.ruleTrie.Find(t.Symbols()[from:])
			if !ok {
				continue
			}
			rule := s.GetRule(ruleID)
			if rule.IsDeleted() {
				continue
			}

			to := from + rule.LHS().Len()
			if !slices.Equal(t.Symbols()[from:to], rule.LHS().Symbols()) {
				panic("rewriting: trie lookup does not match the rule's left hand side")
			}

			t.RewriteSubTerm(from, to, rule.RHS())

			if path != nil {
				path.Add(RewriteStep{Offset: from, RuleID: ruleID, Inverse: false})
			}

			// A rewrite can shorten the term and shift every position
			// after it, so restart the scan from the beginning.
			changed = true
			tryAgain = true
			break
		}

		if !tryAgain {
			break
		}
	}

	if s.debug.Contains(term.DebugSimplify) {
		if changed {
			fmt.Fprintf(s.ctx.DebugOut, "= Simplified %s: ", t)
			path.Dump(s.ctx.DebugOut, original, s)
			fmt.Fprintf(s.ctx.DebugOut, "\n")
		} else {
			fmt.Fprintf(s.ctx.DebugOut, "= Irreducible term: %s\n", t)
		}
	}

	if path != nil && changed == path.IsEmpty() {
		panic("rewriting: simplification path does not reflect the rewrite")
	}
	return changed
}
