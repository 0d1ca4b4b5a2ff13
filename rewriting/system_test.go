package rewriting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossopoeia/rewrite/rewriting/protocol"
	"github.com/glossopoeia/rewrite/rewriting/term"
)

// Terms over an abstract alphabet of name symbols, ordered A < B < C.
func letters(ctx *term.Context, ls ...string) *term.MutableTerm {
	result := term.NewMutableTerm()
	for _, l := range ls {
		result.Add(ctx.NameSymbol(l))
	}
	return result
}

func TestTrivialRuleDiscarded(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)

	added := sys.AddRule(letters(ctx, "A", "B"), letters(ctx, "A", "B"), nil)
	require.False(t, added)
	assert.Empty(t, sys.Rules())
	assert.Empty(t, sys.HomotopyGenerators())
}

func TestOrientation(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)

	added := sys.AddRule(letters(ctx, "A"), letters(ctx, "B"), nil)
	require.True(t, added)
	require.Len(t, sys.Rules(), 1)

	rule := sys.GetRule(0)
	assert.Equal(t, "B", rule.LHS().String())
	assert.Equal(t, "A", rule.RHS().String())
}

func TestCascadingSimplification(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)

	require.True(t, sys.AddRule(letters(ctx, "A"), letters(ctx, "B"), nil))

	// Both sides reduce to A.C, so the rule is trivial.
	added := sys.AddRule(letters(ctx, "B", "C"), letters(ctx, "A", "C"), nil)
	require.False(t, added)
	assert.Len(t, sys.Rules(), 1)
}

func TestSimplifyRecordsPath(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))

	tm := letters(ctx, "B", "B")
	var path RewritePath
	changed := sys.Simplify(tm, &path)

	require.True(t, changed)
	assert.Equal(t, "A.A", tm.String())
	require.Len(t, path.Steps(), 2)
	assert.Equal(t, RewriteStep{Offset: 0, RuleID: 0, Inverse: false}, path.Steps()[0])
	assert.Equal(t, RewriteStep{Offset: 1, RuleID: 0, Inverse: false}, path.Steps()[1])
}

func TestSimplifyIdempotent(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))
	require.True(t, sys.AddRule(letters(ctx, "C", "C"), letters(ctx, "A"), nil))

	tm := letters(ctx, "C", "C", "B", "C", "C")
	require.True(t, sys.Simplify(tm, nil))
	normal := tm.String()

	var path RewritePath
	changed := sys.Simplify(tm, &path)
	assert.False(t, changed)
	assert.True(t, path.IsEmpty())
	assert.Equal(t, normal, tm.String())

	// No rule's left hand side survives in the normal form.
	for i := range sys.Rules() {
		rule := sys.GetRule(i)
		if rule.IsDeleted() {
			continue
		}
		assert.NotContains(t, "."+tm.String()+".", "."+rule.LHS().String()+".")
	}
}

func TestAddRulePanicsOnEmptySide(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	assert.Panics(t, func() {
		sys.AddRule(term.NewMutableTerm(), letters(ctx, "A"), nil)
	})
}

func TestTrivialLoopRecorded(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))

	// B.B == A.A is a consequence of rule 0 applied twice; supplying the
	// derivation turns the redundancy into a homotopy generator.
	var path RewritePath
	path.Add(RewriteStep{Offset: 0, RuleID: 0, Inverse: false})
	path.Add(RewriteStep{Offset: 1, RuleID: 0, Inverse: false})

	added := sys.AddRule(letters(ctx, "B", "B"), letters(ctx, "A", "A"), &path)
	require.False(t, added)
	require.Len(t, sys.HomotopyGenerators(), 1)

	generator := sys.HomotopyGenerators()[0]
	assert.Equal(t, "A.A", generator.Basepoint.String())
	assertLoopCloses(t, sys, generator)
}

func TestNonTrivialLoopRecorded(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "A", "B"), letters(ctx, "A"), nil))
	require.True(t, sys.AddRule(letters(ctx, "B", "C"), letters(ctx, "B"), nil))

	// The two rules overlap on A.B.C, which reduces to both A.C and A.B;
	// completion hands us the critical pair with its derivation.
	var path RewritePath
	path.Add(RewriteStep{Offset: 0, RuleID: 0, Inverse: true})
	path.Add(RewriteStep{Offset: 1, RuleID: 1, Inverse: false})

	added := sys.AddRule(letters(ctx, "A", "C"), letters(ctx, "A", "B"), &path)
	require.True(t, added)
	require.Len(t, sys.Rules(), 3)

	rule := sys.GetRule(2)
	assert.Equal(t, "A.C", rule.LHS().String())
	assert.Equal(t, "A", rule.RHS().String())

	require.Len(t, sys.HomotopyGenerators(), 1)
	generator := sys.HomotopyGenerators()[0]
	assert.Equal(t, "A.C", generator.Basepoint.String())
	assertLoopCloses(t, sys, generator)
}

func TestPostCompletionPruning(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "B", "C"), letters(ctx, "A", "C"), nil))
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))

	sys.SimplifyRewriteSystem()

	// The wider rule's left hand side contains the narrower rule's.
	assert.True(t, sys.GetRule(0).IsDeleted())
	assert.False(t, sys.GetRule(1).IsDeleted())

	tm := letters(ctx, "B", "C")
	var path RewritePath
	require.True(t, sys.Simplify(tm, &path))
	assert.Equal(t, "A.C", tm.String())
	for _, step := range path.Steps() {
		assert.Equal(t, 1, step.RuleID)
	}
}

func TestRHSReductionLoop(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "C", "C"), letters(ctx, "C", "B"), nil))
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))

	sys.SimplifyRewriteSystem()

	require.Len(t, sys.Rules(), 3)
	assert.True(t, sys.GetRule(0).IsDeleted())
	assert.False(t, sys.GetRule(1).IsDeleted())

	replacement := sys.GetRule(2)
	assert.False(t, replacement.IsDeleted())
	assert.Equal(t, "C.C", replacement.LHS().String())
	assert.Equal(t, "C.A", replacement.RHS().String())

	require.Len(t, sys.HomotopyGenerators(), 1)
	generator := sys.HomotopyGenerators()[0]
	assert.Equal(t, "C.A", generator.Basepoint.String())
	require.Len(t, generator.Loop.Steps(), 3)
	assert.Equal(t, RewriteStep{Offset: 1, RuleID: 1, Inverse: true}, generator.Loop.Steps()[0])
	assert.Equal(t, RewriteStep{Offset: 0, RuleID: 0, Inverse: true}, generator.Loop.Steps()[1])
	assert.Equal(t, RewriteStep{Offset: 0, RuleID: 2, Inverse: false}, generator.Loop.Steps()[2])
	assertLoopCloses(t, sys, generator)
}

func TestRuleIDsAreStable(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "C", "C"), letters(ctx, "C", "B"), nil))
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))

	lhs := sys.GetRule(0).LHS()
	rhs := sys.GetRule(0).RHS()

	sys.SimplifyRewriteSystem()

	// Deletion is a tombstone, never a renumbering.
	assert.Equal(t, lhs, sys.GetRule(0).LHS())
	assert.Equal(t, rhs, sys.GetRule(0).RHS())
	assert.True(t, sys.GetRule(0).IsDeleted())
}

func TestInitialize(t *testing.T) {
	ctx := term.NewContext()
	graph := protocol.NewGraph([]protocol.Decl{{Name: "P"}})
	sys := NewRewriteSystem(ctx)

	sys.Initialize([]RulePair{
		{LHS: letters(ctx, "A"), RHS: letters(ctx, "B")},
		{LHS: letters(ctx, "B", "C"), RHS: letters(ctx, "A", "C")},
	}, graph)

	// The second pair collapses once the first rule is in place.
	require.Len(t, sys.Rules(), 1)
	assert.Equal(t, "B", sys.GetRule(0).LHS().String())
}

func TestMergedAssociatedTypeHook(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)

	var seen []string
	sys.CheckMergedAssociatedType = func(lhs, rhs term.Term) {
		seen = append(seen, lhs.String()+" => "+rhs.String())
	}

	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))
	require.False(t, sys.AddRule(letters(ctx, "A"), letters(ctx, "A"), nil))

	// The hook fires only for rules that are actually added.
	assert.Equal(t, []string{"B => A"}, seen)
}

func TestSimplifySubstitutions(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))

	inner := ctx.Intern(letters(ctx, "B", "C"))
	concrete := ctx.ConcreteTypeSymbol("Array", []term.Term{inner})

	simplified := sys.SimplifySubstitutions(concrete)
	require.NotEqual(t, concrete, simplified)
	assert.Equal(t, "A.C", simplified.Substitutions()[0].String())

	// Already-normal substitutions leave the symbol interned as-is.
	assert.Equal(t, simplified, sys.SimplifySubstitutions(simplified))
}

func TestVerify(t *testing.T) {
	ctx := term.NewContext()
	graph := protocol.NewGraph([]protocol.Decl{{Name: "P"}, {Name: "Q"}})
	sys := NewRewriteSystem(ctx)
	sys.Initialize(nil, graph)

	lhs := term.NewMutableTerm(ctx.ProtocolSymbol("P"), ctx.NameSymbol("T"))
	rhs := term.NewMutableTerm(ctx.AssociatedTypeSymbol("P", "T"))
	require.True(t, sys.AddRule(lhs, rhs, nil))

	assert.NotPanics(t, func() { sys.Verify() })
}

func TestVerifyRejectsNameOnRHS(t *testing.T) {
	ctx := term.NewContext()
	ctx.DebugOut = &strings.Builder{}
	graph := protocol.NewGraph([]protocol.Decl{{Name: "P"}})
	sys := NewRewriteSystem(ctx)
	sys.Initialize(nil, graph)

	lhs := term.NewMutableTerm(ctx.ProtocolSymbol("P"), ctx.NameSymbol("T"), ctx.NameSymbol("U"))
	rhs := term.NewMutableTerm(ctx.ProtocolSymbol("P"), ctx.NameSymbol("T"))
	require.True(t, sys.AddRule(lhs, rhs, nil))

	assert.Panics(t, func() { sys.Verify() })

	// With known-invalid input the name check is the frontend's problem.
	sys.AssumeValidInput = false
	assert.NotPanics(t, func() { sys.Verify() })
}

func TestCloseUpdatesHistograms(t *testing.T) {
	ctx := term.NewContext()
	sys := NewRewriteSystem(ctx)
	require.True(t, sys.AddRule(letters(ctx, "B"), letters(ctx, "A"), nil))

	sys.Close()

	assert.EqualValues(t, 1, ctx.RuleTrieRootHistogram.Samples())
	assert.EqualValues(t, 2, ctx.RuleTrieHistogram.Samples())
}

// Applying a generator's loop to its basepoint must land back on the
// basepoint.
func assertLoopCloses(t *testing.T, sys *RewriteSystem, generator HomotopyGenerator) {
	t.Helper()
	cursor := generator.Basepoint.Mutable()
	generator.Loop.ApplyTo(cursor, sys)
	require.Equal(t, generator.Basepoint.String(), cursor.String(),
		"homotopy generator loop does not close")
}
